package repositories

import (
	"context"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
)

// RoomReader provides read access to rooms and their membership lists.
type RoomReader interface {
	// FindRoomByID returns apperrors.ErrNotFound when no room has the code.
	FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error)
	FindRoomMembers(ctx context.Context, roomID string) ([]domain.RoomMember, error)
	FindMemberByID(ctx context.Context, memberID string) (*domain.RoomMember, error)
	FindMemberByEmail(ctx context.Context, roomID, email string) (*domain.RoomMember, error)
}

// RoomWriter persists rooms and membership records.
type RoomWriter interface {
	// SaveRoom returns an error wrapping apperrors.ErrDuplicate when the
	// room code is already taken.
	SaveRoom(ctx context.Context, room domain.Room) error
	AddRoomMember(ctx context.Context, member domain.RoomMember) error
}

// RoomRepository is the full persistence surface for rooms.
type RoomRepository interface {
	RoomReader
	RoomWriter
}
