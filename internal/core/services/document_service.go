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
	"github.com/google/uuid"
)

// documentService implements the DocumentSvcFacade interface.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepository
	roomRepo     portsrepo.RoomReader
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepository, roomRepo portsrepo.RoomReader) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		roomRepo:     roomRepo,
	}
}

// Ensure documentService implements the DocumentSvcFacade interface.
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument records the metadata of a newly shared file.
func (s *documentService) CreateDocument(ctx context.Context, roomID, uploaderID string, input portssvc.CreateDocumentInput) (*domain.Document, error) {
	if _, err := s.roomRepo.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}

	if input.FileName == "" || input.FileURL == "" {
		return nil, fmt.Errorf("file name and file URL are required: %w", apperrors.ErrValidation)
	}
	if input.FileSize < 0 {
		return nil, fmt.Errorf("file size must not be negative: %w", apperrors.ErrValidation)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	now := time.Now()
	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		RoomID:      roomID,
		FileName:    input.FileName,
		FileType:    input.FileType,
		FileSize:    input.FileSize,
		FileURL:     input.FileURL,
		UploadedBy:  uploaderID,
		Description: input.Description,
		IsPublic:    isPublic,
	}
	doc.CreatedAt = now
	doc.CreatedBy = uploaderID
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = uploaderID

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document", slog.String("room_id", roomID))
		return nil, err
	}

	s.LogInfo(ctx, "Document created successfully",
		slog.String("document_id", doc.DocumentID),
		slog.String("room_id", roomID))
	return &doc, nil
}

// ListRoomDocuments returns all document metadata records of a room.
func (s *documentService) ListRoomDocuments(ctx context.Context, roomID string) ([]domain.Document, error) {
	if _, err := s.roomRepo.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	docs, err := s.documentRepo.FindDocumentsByRoom(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.String("room_id", roomID))
		return nil, err
	}
	return docs, nil
}

// GetDocument returns a single document metadata record by ID.
func (s *documentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.documentRepo.FindDocumentByID(ctx, documentID)
}

// UpdateDocument applies a partial metadata update. Only the uploader may
// change a document.
func (s *documentService) UpdateDocument(ctx context.Context, documentID, callerID string, input portssvc.UpdateDocumentInput) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.UploadedBy != callerID {
		s.LogWarn(ctx, "Member attempted to update someone else's document",
			slog.String("document_id", documentID), slog.String("caller_id", callerID))
		return nil, fmt.Errorf("only the uploader may update a document: %w", apperrors.ErrForbidden)
	}

	if input.FileName != nil {
		if *input.FileName == "" {
			return nil, fmt.Errorf("file name must not be empty: %w", apperrors.ErrValidation)
		}
		doc.FileName = *input.FileName
	}
	if input.Description != nil {
		doc.Description = *input.Description
	}
	if input.IsPublic != nil {
		doc.IsPublic = *input.IsPublic
	}

	doc.LastUpdatedAt = time.Now()
	doc.LastUpdatedBy = callerID

	if err := s.documentRepo.UpdateDocument(ctx, *doc); err != nil {
		s.LogError(ctx, err, "Failed to update document", slog.String("document_id", documentID))
		return nil, err
	}

	s.LogInfo(ctx, "Document updated successfully", slog.String("document_id", documentID))
	return doc, nil
}

// DeleteDocument removes a document metadata record. Only the uploader may
// delete it.
func (s *documentService) DeleteDocument(ctx context.Context, documentID, callerID string) error {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.UploadedBy != callerID {
		s.LogWarn(ctx, "Member attempted to delete someone else's document",
			slog.String("document_id", documentID), slog.String("caller_id", callerID))
		return fmt.Errorf("only the uploader may delete a document: %w", apperrors.ErrForbidden)
	}

	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		s.LogError(ctx, err, "Failed to delete document", slog.String("document_id", documentID))
		return err
	}

	s.LogInfo(ctx, "Document deleted successfully", slog.String("document_id", documentID))
	return nil
}
