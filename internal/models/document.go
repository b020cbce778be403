package models

import "time"

// Document is the database representation of a document metadata row.
type Document struct {
	DocumentID    string    `db:"document_id"`
	RoomID        string    `db:"room_id"`
	FileName      string    `db:"file_name"`
	FileType      string    `db:"file_type"`
	FileSize      int64     `db:"file_size"`
	FileURL       string    `db:"file_url"`
	UploadedBy    string    `db:"uploaded_by"`
	Description   string    `db:"description"`
	IsPublic      bool      `db:"is_public"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
