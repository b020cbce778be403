package domain

// Document is the metadata record for a file shared in a room. The file
// bytes live wherever FileURL points; this service only tracks metadata.
type Document struct {
	DocumentID  string `json:"documentID"` // Primary Key (UUID)
	RoomID      string `json:"roomID"`     // FK -> rooms.room_id
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"` // e.g. pdf, image, video
	FileSize    int64  `json:"fileSize"` // Bytes
	FileURL     string `json:"fileURL"`
	UploadedBy  string `json:"uploadedBy"` // MemberID reference
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
	AuditFields
}
