package middleware

import "github.com/gin-gonic/gin"

// memberIDKey is the key used to store the authenticated member's ID.
const memberIDKey = contextKey("memberID")

// roomIDKey is the key used to store the room the token is scoped to.
const roomIDKey = contextKey("roomID")

// GetMemberIDFromContext retrieves the authenticated member ID from the Gin
// context. It returns the member ID and a boolean indicating if it was found.
func GetMemberIDFromContext(c *gin.Context) (string, bool) {
	memberIDVal := c.Request.Context().Value(memberIDKey)
	if memberIDVal == nil {
		return "", false
	}
	memberID, ok := memberIDVal.(string)
	if !ok {
		return "", false
	}
	return memberID, true
}

// GetRoomIDFromContext retrieves the room ID the caller's token is scoped
// to.
func GetRoomIDFromContext(c *gin.Context) (string, bool) {
	roomIDVal := c.Request.Context().Value(roomIDKey)
	if roomIDVal == nil {
		return "", false
	}
	roomID, ok := roomIDVal.(string)
	if !ok {
		return "", false
	}
	return roomID, true
}
