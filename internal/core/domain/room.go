package domain

import "time"

// Room represents a shared trip-planning space joined via a room code and password.
type Room struct {
	RoomID       string    `json:"roomID"` // User-chosen room code, unique
	PasswordHash string    `json:"-"`      // bcrypt hash, never serialized
	CreatedBy    string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RoomMember represents a participant registered in a room.
// Members are created when a user joins a room with the correct password.
type RoomMember struct {
	MemberID string    `json:"memberID"` // Primary Key (UUID)
	RoomID   string    `json:"roomID"`   // FK -> rooms.room_id
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"`
}
