package repositories

import (
	"context"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
)

// DocumentRepository is the persistence surface for document metadata.
type DocumentRepository interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
	// FindDocumentByID returns apperrors.ErrNotFound when absent.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	FindDocumentsByRoom(ctx context.Context, roomID string) ([]domain.Document, error)
	UpdateDocument(ctx context.Context, doc domain.Document) error
	DeleteDocument(ctx context.Context, documentID string) error
}
