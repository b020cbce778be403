package services

import (
	"context"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
)

// CreateDocumentInput carries the metadata for a newly shared file. The
// bytes themselves live behind FileURL; this service never touches them.
type CreateDocumentInput struct {
	FileName    string
	FileType    string
	FileSize    int64
	FileURL     string
	Description string
	IsPublic    *bool // nil defaults to true
}

// UpdateDocumentInput carries the updatable metadata fields.
type UpdateDocumentInput struct {
	FileName    *string
	Description *string
	IsPublic    *bool
}

// DocumentSvcFacade is the service surface for document metadata CRUD.
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, roomID, uploaderID string, input CreateDocumentInput) (*domain.Document, error)
	ListRoomDocuments(ctx context.Context, roomID string) ([]domain.Document, error)
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)
	UpdateDocument(ctx context.Context, documentID, callerID string, input UpdateDocumentInput) (*domain.Document, error)
	DeleteDocument(ctx context.Context, documentID, callerID string) error
}
