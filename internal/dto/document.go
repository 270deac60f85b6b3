package dto

import (
	"time"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// CreateDocumentRequest defines the data needed to create a new document.
// It binds from JSON and from multipart form fields alike.
type CreateDocumentRequest struct {
	Title        string   `json:"title" form:"title" binding:"required" validate:"required,max=255"`
	Description  string   `json:"description" form:"description" binding:"required" validate:"required"`
	TypeID       string   `json:"typeID" form:"typeID" binding:"required" validate:"required"`
	DepartmentID *string  `json:"departmentID" form:"departmentID"`
	ApproverIDs  []string `json:"approverIDs" form:"approverIDs"` // Optional, routes right after creation
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID   string    `json:"documentID"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TypeID       string    `json:"typeID"`
	DepartmentID *string   `json:"departmentID,omitempty"`
	CreatorID    string    `json:"creatorID"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateDocumentResponse is returned when a document is created.
type CreateDocumentResponse struct {
	Document DocumentResponse  `json:"document"`
	Version  *VersionResponse  `json:"version,omitempty"`
	Requests []RequestResponse `json:"requests,omitempty"`
}

// VersionResponse defines the data returned for a document version.
type VersionResponse struct {
	VersionID         string    `json:"versionID"`
	DocumentID        string    `json:"documentID"`
	VersionNumber     int       `json:"versionNumber"`
	FilePath          string    `json:"filePath"`
	ChangedBy         string    `json:"changedBy"`
	ChangeDescription string    `json:"changeDescription"`
	CreatedAt         time.Time `json:"createdAt"`
}

// AddVersionRequest carries the change description of an uploaded version.
type AddVersionRequest struct {
	ChangeDescription string `form:"changeDescription" binding:"required"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:   d.DocumentID,
		Title:        d.Title,
		Description:  d.Description,
		TypeID:       d.TypeID,
		DepartmentID: d.DepartmentID,
		CreatorID:    d.CreatorID,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToVersionResponse converts a domain.DocumentVersion to VersionResponse DTO.
func ToVersionResponse(v *domain.DocumentVersion) VersionResponse {
	return VersionResponse{
		VersionID:         v.VersionID,
		DocumentID:        v.DocumentID,
		VersionNumber:     v.VersionNumber,
		FilePath:          v.FilePath,
		ChangedBy:         v.ChangedBy,
		ChangeDescription: v.ChangeDescription,
		CreatedAt:         v.CreatedAt,
	}
}

// ToVersionResponses converts a slice of domain.DocumentVersion to []VersionResponse.
func ToVersionResponses(versions []domain.DocumentVersion) []VersionResponse {
	responses := make([]VersionResponse, len(versions))
	for i := range versions {
		responses[i] = ToVersionResponse(&versions[i])
	}
	return responses
}
