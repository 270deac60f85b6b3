package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignaturePlaceholder is a positioned signature slot bound to one approver.
type SignaturePlaceholder struct {
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
	SignatureData *string         `json:"signatureData,omitempty"`
	IsDeleted     bool            `json:"isDeleted"`
}

// PlaceholderInput describes a slot to register.
type PlaceholderInput struct {
	Page         int
	X            decimal.Decimal
	Y            decimal.Decimal
	Width        decimal.Decimal
	Height       decimal.Decimal
	AssignedToID string
}
