package dto

import (
	"time"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlaceholderRequest is one signature slot to register.
type PlaceholderRequest struct {
	Page         int             `json:"page" binding:"required,min=1"`
	X            decimal.Decimal `json:"x"`
	Y            decimal.Decimal `json:"y"`
	Width        decimal.Decimal `json:"width"`
	Height       decimal.Decimal `json:"height"`
	AssignedToID string          `json:"assignedToID" binding:"required"`
}

// RegisterPlaceholdersRequest defines the slots to register on a document.
type RegisterPlaceholdersRequest struct {
	Placeholders []PlaceholderRequest `json:"placeholders" binding:"required,min=1,dive"`
}

// SignRequest carries the signature payload. A signed rendition may be
// attached as the multipart field "signedFile".
type SignRequest struct {
	SignatureData string `json:"signatureData" form:"signatureData" binding:"required"`
}

// PlaceholderResponse defines the data returned for a signature placeholder.
type PlaceholderResponse struct {
	PlaceholderID string          `json:"placeholderID"`
	DocumentID    string          `json:"documentID"`
	Page          int             `json:"page"`
	X             decimal.Decimal `json:"x"`
	Y             decimal.Decimal `json:"y"`
	Width         decimal.Decimal `json:"width"`
	Height        decimal.Decimal `json:"height"`
	AssignedToID  string          `json:"assignedToID"`
	IsSigned      bool            `json:"isSigned"`
	SignedAt      *time.Time      `json:"signedAt,omitempty"`
}

// ToPlaceholderInputs converts the request slots into domain inputs.
func (r RegisterPlaceholdersRequest) ToPlaceholderInputs() []domain.PlaceholderInput {
	inputs := make([]domain.PlaceholderInput, len(r.Placeholders))
	for i, p := range r.Placeholders {
		inputs[i] = domain.PlaceholderInput{
			Page:         p.Page,
			X:            p.X,
			Y:            p.Y,
			Width:        p.Width,
			Height:       p.Height,
			AssignedToID: p.AssignedToID,
		}
	}
	return inputs
}

// ToPlaceholderResponse converts a domain.SignaturePlaceholder to PlaceholderResponse DTO.
func ToPlaceholderResponse(p *domain.SignaturePlaceholder) PlaceholderResponse {
	return PlaceholderResponse{
		PlaceholderID: p.PlaceholderID,
		DocumentID:    p.DocumentID,
		Page:          p.Page,
		X:             p.X,
		Y:             p.Y,
		Width:         p.Width,
		Height:        p.Height,
		AssignedToID:  p.AssignedToID,
		IsSigned:      p.IsSigned,
		SignedAt:      p.SignedAt,
	}
}

// ToPlaceholderResponses converts a slice of domain.SignaturePlaceholder to []PlaceholderResponse.
func ToPlaceholderResponses(placeholders []domain.SignaturePlaceholder) []PlaceholderResponse {
	responses := make([]PlaceholderResponse, len(placeholders))
	for i := range placeholders {
		responses[i] = ToPlaceholderResponse(&placeholders[i])
	}
	return responses
}
