package mapping

import (
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	"github.com/tripmates/trip_planner_app/internal/models"
)

// ToModelDocument converts a domain.Document to its database model.
func ToModelDocument(doc domain.Document) models.Document {
	return models.Document{
		DocumentID:    doc.DocumentID,
		RoomID:        doc.RoomID,
		FileName:      doc.FileName,
		FileType:      doc.FileType,
		FileSize:      doc.FileSize,
		FileURL:       doc.FileURL,
		UploadedBy:    doc.UploadedBy,
		Description:   doc.Description,
		IsPublic:      doc.IsPublic,
		CreatedAt:     doc.CreatedAt,
		CreatedBy:     doc.CreatedBy,
		LastUpdatedAt: doc.LastUpdatedAt,
		LastUpdatedBy: doc.LastUpdatedBy,
	}
}

// ToDomainDocument converts a database document row to the domain entity.
func ToDomainDocument(m models.Document) domain.Document {
	doc := domain.Document{
		DocumentID:  m.DocumentID,
		RoomID:      m.RoomID,
		FileName:    m.FileName,
		FileType:    m.FileType,
		FileSize:    m.FileSize,
		FileURL:     m.FileURL,
		UploadedBy:  m.UploadedBy,
		Description: m.Description,
		IsPublic:    m.IsPublic,
	}
	doc.CreatedAt = m.CreatedAt
	doc.CreatedBy = m.CreatedBy
	doc.LastUpdatedAt = m.LastUpdatedAt
	doc.LastUpdatedBy = m.LastUpdatedBy
	return doc
}

// ToDomainDocuments converts a slice of document models.
func ToDomainDocuments(ms []models.Document) []domain.Document {
	docs := make([]domain.Document, len(ms))
	for i, m := range ms {
		docs[i] = ToDomainDocument(m)
	}
	return docs
}
