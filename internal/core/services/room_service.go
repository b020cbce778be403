package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripmates/trip_planner_app/internal/apperrors"
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portsrepo "github.com/tripmates/trip_planner_app/internal/core/ports/repositories"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
	"github.com/tripmates/trip_planner_app/internal/utils"
	"github.com/google/uuid"
)

// TokenConfig carries what the room service needs to mint access tokens.
type TokenConfig struct {
	Secret         string
	ExpiryDuration time.Duration
	Issuer         string
}

// roomService implements the RoomSvcFacade interface.
type roomService struct {
	BaseService
	roomRepo portsrepo.RoomRepository
	tokens   TokenConfig
}

// NewRoomService creates a new room service.
func NewRoomService(repo portsrepo.RoomRepository, tokens TokenConfig) portssvc.RoomSvcFacade {
	return &roomService{
		roomRepo: repo,
		tokens:   tokens,
	}
}

// Ensure roomService implements the RoomSvcFacade interface.
var _ portssvc.RoomSvcFacade = (*roomService)(nil)

// CreateRoom creates a new password-protected room.
func (s *roomService) CreateRoom(ctx context.Context, roomID, password string) (*domain.Room, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash room password", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to hash room password: %w", err)
	}

	room := domain.Room{
		RoomID:       roomID,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.roomRepo.SaveRoom(ctx, room); err != nil {
		s.LogError(ctx, err, "Failed to save room", slog.String("room_id", roomID))
		return nil, err
	}

	s.LogInfo(ctx, "Room created successfully", slog.String("room_id", roomID))
	return &room, nil
}

// JoinRoom verifies the room password, registers the caller as a member and
// returns an access token scoped to the room. Joining again with a known
// email re-uses the existing membership record instead of duplicating it.
func (s *roomService) JoinRoom(ctx context.Context, roomID, password, name, email string) (*domain.RoomMember, string, error) {
	room, err := s.roomRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		s.LogWarn(ctx, "Room lookup failed during join", slog.String("room_id", roomID), slog.String("error", err.Error()))
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, room.PasswordHash) {
		s.LogWarn(ctx, "Incorrect room password", slog.String("room_id", roomID))
		return nil, "", fmt.Errorf("incorrect password for room %s: %w", roomID, apperrors.ErrUnauthorized)
	}

	member, err := s.roomRepo.FindMemberByEmail(ctx, roomID, email)
	if err != nil && !isNotFound(err) {
		s.LogError(ctx, err, "Failed to look up existing member", slog.String("room_id", roomID))
		return nil, "", err
	}

	if member == nil {
		member = &domain.RoomMember{
			MemberID: uuid.NewString(),
			RoomID:   roomID,
			Name:     name,
			Email:    email,
			JoinedAt: time.Now(),
		}
		if err := s.roomRepo.AddRoomMember(ctx, *member); err != nil {
			s.LogError(ctx, err, "Failed to add room member", slog.String("room_id", roomID))
			return nil, "", err
		}
		s.LogInfo(ctx, "Member joined room", slog.String("room_id", roomID), slog.String("member_id", member.MemberID))
	} else {
		s.LogInfo(ctx, "Existing member re-joined room", slog.String("room_id", roomID), slog.String("member_id", member.MemberID))
	}

	token, err := utils.GenerateRoomToken(member.MemberID, roomID, s.tokens.Secret, s.tokens.ExpiryDuration, s.tokens.Issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate room token", slog.String("room_id", roomID))
		return nil, "", fmt.Errorf("failed to generate room token: %w", err)
	}

	return member, token, nil
}

// GetRoomDetails returns the room and its resolved member list.
func (s *roomService) GetRoomDetails(ctx context.Context, roomID string) (*portssvc.RoomDetails, error) {
	room, err := s.roomRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	members, err := s.roomRepo.FindRoomMembers(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch room members", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to fetch room members: %w", err)
	}

	return &portssvc.RoomDetails{Room: *room, Members: members}, nil
}
