package services

import (
	"context"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

// BlobStore persists uploaded files. Names are made unique by the store so
// concurrent uploads never share a path.
type BlobStore interface {
	Save(ctx context.Context, data []byte, suggestedName string) (string, error)
	Close() error
}

// MailSender delivers a plain message to one recipient.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// DocumentCache is a read-through cache for documents. Implementations
// must treat every failure as a miss.
type DocumentCache interface {
	Get(ctx context.Context, documentID string) (*domain.Document, bool)
	Set(ctx context.Context, document domain.Document)
	Invalidate(ctx context.Context, documentID string)
}
