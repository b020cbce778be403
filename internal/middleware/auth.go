package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tripmates/trip_planner_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates room
// access tokens. Tokens are minted when a member joins a room; the claims
// carry the member ID (subject) and the room the token is scoped to.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseRoomToken(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		memberID := claims.Subject
		if memberID == "" || claims.RoomID == "" {
			logger.Error("Member ID or room ID missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		// Store identity in the standard request context and enrich the
		// request logger with it.
		ctx := context.WithValue(c.Request.Context(), memberIDKey, memberID)
		ctx = context.WithValue(ctx, roomIDKey, claims.RoomID)

		enrichedLogger := logger.With(
			slog.String("member_id", memberID),
			slog.String("room_id", claims.RoomID),
		)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoomScope ensures the room in the request path matches the room
// the caller's token was issued for.
func RequireRoomScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		pathRoomID := c.Param("room_id")
		if pathRoomID == "" {
			c.Next()
			return
		}
		tokenRoomID, ok := GetRoomIDFromContext(c)
		if !ok || tokenRoomID != pathRoomID {
			GetLoggerFromCtx(c.Request.Context()).Warn("Token not scoped to requested room",
				slog.String("path_room_id", pathRoomID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is not valid for this room"})
			return
		}
		c.Next()
	}
}
