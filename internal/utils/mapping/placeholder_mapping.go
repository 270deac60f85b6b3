package mapping

import (
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	"github.com/SscSPs/document_tracking_app/internal/models"
)

// ToModelPlaceholder converts a domain SignaturePlaceholder to a model SignaturePlaceholder
func ToModelPlaceholder(d domain.SignaturePlaceholder) models.SignaturePlaceholder {
	return models.SignaturePlaceholder(d)
}

// ToDomainPlaceholder converts a model SignaturePlaceholder to a domain SignaturePlaceholder
func ToDomainPlaceholder(m models.SignaturePlaceholder) domain.SignaturePlaceholder {
	return domain.SignaturePlaceholder(m)
}

// ToDomainPlaceholders converts a slice of model SignaturePlaceholder to domain SignaturePlaceholder
func ToDomainPlaceholders(ms []models.SignaturePlaceholder) []domain.SignaturePlaceholder {
	out := make([]domain.SignaturePlaceholder, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPlaceholder(m)
	}
	return out
}
