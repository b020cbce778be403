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

const itinerarySelectColumns = `
	itinerary_id, room_id, title, start_date, end_date,
	created_at, created_by, last_updated_at, last_updated_by
`

const activityInsertQuery = `
	INSERT INTO itinerary_activities (
		activity_id, itinerary_id, title, description, location,
		date, start_time, end_time, cost, notes, created_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

type PgxItineraryRepository struct {
	BaseRepository
}

// newPgxItineraryRepository creates a new repository for itinerary data.
func newPgxItineraryRepository(pool *pgxpool.Pool) portsrepo.ItineraryRepository {
	return &PgxItineraryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxItineraryRepository implements portsrepo.ItineraryRepository
var _ portsrepo.ItineraryRepository = (*PgxItineraryRepository)(nil)

// SaveItinerary inserts an itinerary and its activities within one DB
// transaction.
func (r *PgxItineraryRepository) SaveItinerary(ctx context.Context, itinerary domain.Itinerary) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelItinerary := mapping.ToModelItinerary(itinerary)
	query := `
		INSERT INTO itineraries (
			itinerary_id, room_id, title, start_date, end_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		modelItinerary.ItineraryID,
		modelItinerary.RoomID,
		modelItinerary.Title,
		modelItinerary.StartDate,
		modelItinerary.EndDate,
		modelItinerary.CreatedAt,
		modelItinerary.CreatedBy,
		modelItinerary.LastUpdatedAt,
		modelItinerary.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: room referenced by itinerary %s does not exist", apperrors.ErrNotFound, itinerary.ItineraryID)
		}
		return apperrors.NewAppError(500, "failed to insert itinerary "+itinerary.ItineraryID, err)
	}

	if err := queueActivityInserts(ctx, tx, itinerary); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit itinerary "+itinerary.ItineraryID, err)
	}
	return nil
}

// queueActivityInserts batches the activity inserts of an itinerary onto tx.
func queueActivityInserts(ctx context.Context, tx pgx.Tx, itinerary domain.Itinerary) error {
	modelActivities := mapping.ToModelActivities(itinerary)
	if len(modelActivities) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, activity := range modelActivities {
		batch.Queue(activityInsertQuery,
			activity.ActivityID,
			activity.ItineraryID,
			activity.Title,
			activity.Description,
			activity.Location,
			activity.Date,
			activity.StartTime,
			activity.EndTime,
			activity.Cost,
			activity.Notes,
			activity.CreatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert activities for itinerary "+itinerary.ItineraryID, err)
	}
	return nil
}

// FindItineraryByID retrieves an itinerary and its activities.
func (r *PgxItineraryRepository) FindItineraryByID(ctx context.Context, itineraryID string) (*domain.Itinerary, error) {
	query := `SELECT ` + itinerarySelectColumns + ` FROM itineraries WHERE itinerary_id = $1;`
	rows, err := r.Pool.Query(ctx, query, itineraryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query itinerary "+itineraryID, err)
	}
	modelItinerary, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Itinerary])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan itinerary "+itineraryID, err)
	}

	activitiesByItinerary, err := r.findActivities(ctx, []string{itineraryID})
	if err != nil {
		return nil, err
	}

	itinerary := mapping.ToDomainItinerary(modelItinerary, activitiesByItinerary[itineraryID])
	return &itinerary, nil
}

// FindItinerariesByRoom retrieves all itineraries of a room ordered by start
// date, activities included.
func (r *PgxItineraryRepository) FindItinerariesByRoom(ctx context.Context, roomID string) ([]domain.Itinerary, error) {
	query := `
		SELECT ` + itinerarySelectColumns + `
		FROM itineraries
		WHERE room_id = $1
		ORDER BY start_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query itineraries for room "+roomID, err)
	}
	modelItineraries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Itinerary])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect itinerary rows for room "+roomID, err)
	}

	ids := make([]string, len(modelItineraries))
	for i, m := range modelItineraries {
		ids[i] = m.ItineraryID
	}
	activitiesByItinerary, err := r.findActivities(ctx, ids)
	if err != nil {
		return nil, err
	}

	itineraries := make([]domain.Itinerary, len(modelItineraries))
	for i, m := range modelItineraries {
		itineraries[i] = mapping.ToDomainItinerary(m, activitiesByItinerary[m.ItineraryID])
	}
	return itineraries, nil
}

// UpdateItinerary rewrites the itinerary row and replaces its activities
// within one DB transaction.
func (r *PgxItineraryRepository) UpdateItinerary(ctx context.Context, itinerary domain.Itinerary) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelItinerary := mapping.ToModelItinerary(itinerary)
	query := `
		UPDATE itineraries
		SET title = $2, start_date = $3, end_date = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE itinerary_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		modelItinerary.ItineraryID,
		modelItinerary.Title,
		modelItinerary.StartDate,
		modelItinerary.EndDate,
		modelItinerary.LastUpdatedAt,
		modelItinerary.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update itinerary "+itinerary.ItineraryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM itinerary_activities WHERE itinerary_id = $1;`, itinerary.ItineraryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear activities for itinerary "+itinerary.ItineraryID, err)
	}
	if err := queueActivityInserts(ctx, tx, itinerary); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit update of itinerary "+itinerary.ItineraryID, err)
	}
	return nil
}

// DeleteItinerary removes an itinerary; activities cascade via the FK.
func (r *PgxItineraryRepository) DeleteItinerary(ctx context.Context, itineraryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM itineraries WHERE itinerary_id = $1;`, itineraryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete itinerary "+itineraryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// findActivities loads activity rows for a set of itineraries, grouped by
// itinerary and ordered by date then start time.
func (r *PgxItineraryRepository) findActivities(ctx context.Context, itineraryIDs []string) (map[string][]models.Activity, error) {
	grouped := make(map[string][]models.Activity, len(itineraryIDs))
	if len(itineraryIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT activity_id, itinerary_id, title, description, location,
		       date, start_time, end_time, cost, notes, created_by
		FROM itinerary_activities
		WHERE itinerary_id = ANY($1)
		ORDER BY itinerary_id, date, start_time, activity_id;
	`
	rows, err := r.Pool.Query(ctx, query, itineraryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query itinerary activities", err)
	}
	modelActivities, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Activity])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect itinerary activity rows", err)
	}

	for _, activity := range modelActivities {
		grouped[activity.ItineraryID] = append(grouped[activity.ItineraryID], activity)
	}
	return grouped, nil
}
