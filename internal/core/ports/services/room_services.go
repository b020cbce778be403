package services

import (
	"context"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
)

// RoomDetails is a room together with its resolved member list.
type RoomDetails struct {
	Room    domain.Room
	Members []domain.RoomMember
}

// RoomSvcFacade is the service surface for creating, joining and reading
// rooms.
type RoomSvcFacade interface {
	RoomAuthenticatorSvc

	// CreateRoom creates a password-protected room. The password is hashed
	// before storage; returns an error wrapping apperrors.ErrDuplicate when
	// the room code is taken.
	CreateRoom(ctx context.Context, roomID, password string) (*domain.Room, error)

	// GetRoomDetails returns the room (sans password hash) and its members.
	GetRoomDetails(ctx context.Context, roomID string) (*RoomDetails, error)
}

// RoomAuthenticatorSvc authenticates membership of a room.
type RoomAuthenticatorSvc interface {
	// JoinRoom verifies the password, registers (or re-uses) a membership
	// record for the given name/email, and returns the member plus a signed
	// access token scoped to the room. Wrong password yields an error
	// wrapping apperrors.ErrUnauthorized.
	JoinRoom(ctx context.Context, roomID, password, name, email string) (*domain.RoomMember, string, error)
}

// RoomReaderSvc is the slice of room functionality other services need:
// resolving a room and its membership list.
type RoomReaderSvc interface {
	GetRoomDetails(ctx context.Context, roomID string) (*RoomDetails, error)
}
