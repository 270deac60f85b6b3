package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignaturePlaceholder is the signature_placeholders table row.
// Geometry columns are NUMERIC.
type SignaturePlaceholder struct {
	PlaceholderID string          `db:"placeholder_id"`
	DocumentID    string          `db:"document_id"`
	Page          int             `db:"page"`
	X             decimal.Decimal `db:"x"`
	Y             decimal.Decimal `db:"y"`
	Width         decimal.Decimal `db:"width"`
	Height        decimal.Decimal `db:"height"`
	AssignedToID  string          `db:"assigned_to_id"`
	IsSigned      bool            `db:"is_signed"`
	SignedAt      *time.Time      `db:"signed_at"`
	SignatureData *string         `db:"signature_data"`
	IsDeleted     bool            `db:"is_deleted"`
}
