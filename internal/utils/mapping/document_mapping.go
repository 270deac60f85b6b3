package mapping

import (
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	"github.com/SscSPs/document_tracking_app/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:   d.DocumentID,
		Title:        d.Title,
		Description:  d.Description,
		TypeID:       d.TypeID,
		DepartmentID: d.DepartmentID,
		CreatorID:    d.CreatorID,
		Status:       string(d.Status),
		IsDeleted:    d.IsDeleted,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:   m.DocumentID,
		Title:        m.Title,
		Description:  m.Description,
		TypeID:       m.TypeID,
		DepartmentID: m.DepartmentID,
		CreatorID:    m.CreatorID,
		Status:       domain.StatusName(m.Status),
		IsDeleted:    m.IsDeleted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToModelVersion converts a domain DocumentVersion to a model DocumentVersion
func ToModelVersion(d domain.DocumentVersion) models.DocumentVersion {
	return models.DocumentVersion(d)
}

// ToDomainVersion converts a model DocumentVersion to a domain DocumentVersion
func ToDomainVersion(m models.DocumentVersion) domain.DocumentVersion {
	return domain.DocumentVersion(m)
}

// ToDomainVersions converts a slice of model DocumentVersion to domain DocumentVersion
func ToDomainVersions(ms []models.DocumentVersion) []domain.DocumentVersion {
	out := make([]domain.DocumentVersion, len(ms))
	for i, m := range ms {
		out[i] = ToDomainVersion(m)
	}
	return out
}
