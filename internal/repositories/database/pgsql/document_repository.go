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

const documentSelectColumns = `
	document_id, room_id, file_name, file_type, file_size, file_url,
	uploaded_by, description, is_public,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document metadata.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepository
var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

// SaveDocument inserts a document metadata row.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	modelDoc := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (
			document_id, room_id, file_name, file_type, file_size, file_url,
			uploaded_by, description, is_public,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelDoc.DocumentID,
		modelDoc.RoomID,
		modelDoc.FileName,
		modelDoc.FileType,
		modelDoc.FileSize,
		modelDoc.FileURL,
		modelDoc.UploadedBy,
		modelDoc.Description,
		modelDoc.IsPublic,
		modelDoc.CreatedAt,
		modelDoc.CreatedBy,
		modelDoc.LastUpdatedAt,
		modelDoc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: document %s already exists", apperrors.ErrDuplicate, doc.DocumentID)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("%w: room referenced by document %s does not exist", apperrors.ErrNotFound, doc.DocumentID)
			}
		}
		return apperrors.NewAppError(500, "failed to insert document "+doc.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a document metadata row.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentSelectColumns + ` FROM documents WHERE document_id = $1;`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query document "+documentID, err)
	}
	modelDoc, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Document])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan document "+documentID, err)
	}

	doc := mapping.ToDomainDocument(modelDoc)
	return &doc, nil
}

// FindDocumentsByRoom retrieves all document metadata rows of a room,
// newest first.
func (r *PgxDocumentRepository) FindDocumentsByRoom(ctx context.Context, roomID string) ([]domain.Document, error) {
	query := `
		SELECT ` + documentSelectColumns + `
		FROM documents
		WHERE room_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents for room "+roomID, err)
	}
	modelDocs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Document])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect document rows for room "+roomID, err)
	}
	return mapping.ToDomainDocuments(modelDocs), nil
}

// UpdateDocument rewrites the updatable metadata fields.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	modelDoc := mapping.ToModelDocument(doc)
	query := `
		UPDATE documents
		SET file_name = $2, description = $3, is_public = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelDoc.DocumentID,
		modelDoc.FileName,
		modelDoc.Description,
		modelDoc.IsPublic,
		modelDoc.LastUpdatedAt,
		modelDoc.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document "+doc.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDocument removes a document metadata row.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
