package dto

import (
	"time"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
)

// CreateDocumentRequest defines the metadata for a newly shared file.
type CreateDocumentRequest struct {
	FileName    string `json:"fileName" binding:"required,max=256"`
	FileType    string `json:"fileType" binding:"required,oneof=pdf image video other"`
	FileSize    int64  `json:"fileSize" binding:"min=0"`
	FileURL     string `json:"fileUrl" binding:"required,url"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"isPublic"` // omitted means public
}

// UpdateDocumentRequest defines the updatable metadata fields.
type UpdateDocumentRequest struct {
	FileName    *string `json:"fileName"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID  string    `json:"documentId"`
	RoomID      string    `json:"roomId"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	FileSize    int64     `json:"fileSize"`
	FileURL     string    `json:"fileUrl"`
	UploadedBy  string    `json:"uploadedBy"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToCreateDocumentInput converts the request into the service input.
func (r CreateDocumentRequest) ToCreateDocumentInput() portssvc.CreateDocumentInput {
	return portssvc.CreateDocumentInput{
		FileName:    r.FileName,
		FileType:    r.FileType,
		FileSize:    r.FileSize,
		FileURL:     r.FileURL,
		Description: r.Description,
		IsPublic:    r.IsPublic,
	}
}

// ToUpdateDocumentInput converts the request into the service input.
func (r UpdateDocumentRequest) ToUpdateDocumentInput() portssvc.UpdateDocumentInput {
	return portssvc.UpdateDocumentInput{
		FileName:    r.FileName,
		Description: r.Description,
		IsPublic:    r.IsPublic,
	}
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO.
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  doc.DocumentID,
		RoomID:      doc.RoomID,
		FileName:    doc.FileName,
		FileType:    doc.FileType,
		FileSize:    doc.FileSize,
		FileURL:     doc.FileURL,
		UploadedBy:  doc.UploadedBy,
		Description: doc.Description,
		IsPublic:    doc.IsPublic,
		CreatedAt:   doc.CreatedAt,
	}
}

// ToDocumentResponses converts a slice of domain.Document to []DocumentResponse.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = ToDocumentResponse(&doc)
	}
	return responses
}
