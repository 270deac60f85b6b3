package models

import "time"

// Document is the documents table row.
type Document struct {
	DocumentID   string    `db:"document_id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	TypeID       string    `db:"type_id"`
	DepartmentID *string   `db:"department_id"`
	CreatorID    string    `db:"creator_id"`
	Status       string    `db:"status"`
	IsDeleted    bool      `db:"is_deleted"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// DocumentVersion is the document_versions table row.
type DocumentVersion struct {
	VersionID         string    `db:"version_id"`
	DocumentID        string    `db:"document_id"`
	VersionNumber     int       `db:"version_number"`
	FilePath          string    `db:"file_path"`
	ChangedBy         string    `db:"changed_by"`
	ChangeDescription string    `db:"change_description"`
	CreatedAt         time.Time `db:"created_at"`
}
