package domain

import "time"

// Document is the tracked artefact. Status is a projection of its requests
// and is only ever written by the workflow.
type Document struct {
	DocumentID   string     `json:"documentID"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	TypeID       string     `json:"typeID"`
	DepartmentID *string    `json:"departmentID,omitempty"`
	CreatorID    string     `json:"creatorID"`
	Status       StatusName `json:"status"`
	IsDeleted    bool       `json:"isDeleted"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// DocumentVersion is one immutable file revision. VersionNumber is 1-based
// and strictly increasing per document.
type DocumentVersion struct {
	VersionID         string    `json:"versionID"`
	DocumentID        string    `json:"documentID"`
	VersionNumber     int       `json:"versionNumber"`
	FilePath          string    `json:"filePath"`
	ChangedBy         string    `json:"changedBy"`
	ChangeDescription string    `json:"changeDescription"`
	CreatedAt         time.Time `json:"createdAt"`
}

// FileUpload is a file received from a caller, not yet in the blob store.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}
