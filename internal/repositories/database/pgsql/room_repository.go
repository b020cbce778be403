package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/tripmates/trip_planner_app/internal/apperrors"
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portsrepo "github.com/tripmates/trip_planner_app/internal/core/ports/repositories"
	"github.com/tripmates/trip_planner_app/internal/models"
	"github.com/tripmates/trip_planner_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRoomRepository struct {
	BaseRepository
}

// newPgxRoomRepository creates a new repository for room and membership data.
func newPgxRoomRepository(pool *pgxpool.Pool) portsrepo.RoomRepository {
	return &PgxRoomRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRoomRepository implements portsrepo.RoomRepository
var _ portsrepo.RoomRepository = (*PgxRoomRepository)(nil)

// SaveRoom inserts a new room. The room code is the primary key, so a taken
// code surfaces as a conflict.
func (r *PgxRoomRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	modelRoom := mapping.ToModelRoom(room)
	query := `
		INSERT INTO rooms (room_id, password_hash, created_by, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRoom.RoomID,
		modelRoom.PasswordHash,
		modelRoom.CreatedBy,
		modelRoom.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: room code %s already exists", apperrors.ErrDuplicate, room.RoomID)
		}
		return apperrors.NewAppError(500, "failed to insert room "+room.RoomID, err)
	}
	return nil
}

// FindRoomByID retrieves a room by its code.
func (r *PgxRoomRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	query := `
		SELECT room_id, password_hash, created_by, created_at
		FROM rooms
		WHERE room_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query room "+roomID, err)
	}
	modelRoom, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Room])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan room "+roomID, err)
	}

	room := mapping.ToDomainRoom(modelRoom)
	return &room, nil
}

// FindRoomMembers retrieves the membership list of a room, oldest first.
func (r *PgxRoomRepository) FindRoomMembers(ctx context.Context, roomID string) ([]domain.RoomMember, error) {
	query := `
		SELECT member_id, room_id, name, email, joined_at
		FROM room_members
		WHERE room_id = $1
		ORDER BY joined_at, member_id;
	`
	rows, err := r.Pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members of room "+roomID, err)
	}
	modelMembers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.RoomMember])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect member rows for room "+roomID, err)
	}
	return mapping.ToDomainRoomMembers(modelMembers), nil
}

// FindMemberByID retrieves a single membership record.
func (r *PgxRoomRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.RoomMember, error) {
	query := `
		SELECT member_id, room_id, name, email, joined_at
		FROM room_members
		WHERE member_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query member "+memberID, err)
	}
	modelMember, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.RoomMember])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan member "+memberID, err)
	}

	member := mapping.ToDomainRoomMember(modelMember)
	return &member, nil
}

// FindMemberByEmail looks up a membership record by room and email, used to
// re-attach a returning member on join.
func (r *PgxRoomRepository) FindMemberByEmail(ctx context.Context, roomID, email string) (*domain.RoomMember, error) {
	query := `
		SELECT member_id, room_id, name, email, joined_at
		FROM room_members
		WHERE room_id = $1 AND email = $2;
	`
	rows, err := r.Pool.Query(ctx, query, roomID, email)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query member by email in room "+roomID, err)
	}
	modelMember, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.RoomMember])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan member by email in room "+roomID, err)
	}

	member := mapping.ToDomainRoomMember(modelMember)
	return &member, nil
}

// AddRoomMember inserts a membership record.
func (r *PgxRoomRepository) AddRoomMember(ctx context.Context, member domain.RoomMember) error {
	modelMember := mapping.ToModelRoomMember(member)
	query := `
		INSERT INTO room_members (member_id, room_id, name, email, joined_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelMember.MemberID,
		modelMember.RoomID,
		modelMember.Name,
		modelMember.Email,
		modelMember.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: member with email %s already in room %s", apperrors.ErrDuplicate, member.Email, member.RoomID)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("%w: room %s does not exist", apperrors.ErrNotFound, member.RoomID)
			}
		}
		return apperrors.NewAppError(500, "failed to insert member into room "+member.RoomID, err)
	}
	return nil
}
