package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoomClaims are the JWT claims carried by a room access token. The subject
// is the member ID; RoomID scopes the token to a single room.
type RoomClaims struct {
	RoomID string `json:"roomID"`
	jwt.RegisteredClaims
}

// GenerateRoomToken mints a signed access token for a room member.
func GenerateRoomToken(memberID, roomID, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := RoomClaims{
		RoomID: roomID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   memberID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseRoomToken parses a room token string and validates its signature and
// standard claims. It returns the claims if the token is valid.
func ParseRoomToken(tokenString, secret string) (*RoomClaims, error) {
	claims := &RoomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
