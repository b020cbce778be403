package models

import "time"

// Room is the database representation of a planning room.
type Room struct {
	RoomID       string    `db:"room_id"`
	PasswordHash string    `db:"password_hash"`
	CreatedBy    *string   `db:"created_by"` // Nullable: rooms can predate their creator joining
	CreatedAt    time.Time `db:"created_at"`
}

// RoomMember is the database representation of a room membership record.
type RoomMember struct {
	MemberID string    `db:"member_id"`
	RoomID   string    `db:"room_id"`
	Name     string    `db:"name"`
	Email    string    `db:"email"`
	JoinedAt time.Time `db:"joined_at"`
}
