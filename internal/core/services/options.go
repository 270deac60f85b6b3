package services

import (
	"time"

	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

// serviceOptions holds the optional collaborators shared by the services.
type serviceOptions struct {
	blobStore  portssvc.BlobStore
	cache      portssvc.DocumentCache
	mailSender portssvc.MailSender
	clock      func() time.Time
}

// ServiceOption configures optional collaborators of a service.
type ServiceOption func(*serviceOptions)

// WithBlobStore sets the store uploaded files are saved to.
func WithBlobStore(store portssvc.BlobStore) ServiceOption {
	return func(o *serviceOptions) {
		o.blobStore = store
	}
}

// WithDocumentCache sets the read-through document cache.
func WithDocumentCache(cache portssvc.DocumentCache) ServiceOption {
	return func(o *serviceOptions) {
		o.cache = cache
	}
}

// WithMailSender makes the dispatcher email every notification.
func WithMailSender(sender portssvc.MailSender) ServiceOption {
	return func(o *serviceOptions) {
		o.mailSender = sender
	}
}

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.clock = clock
	}
}

func applyOptions(opts []ServiceOption) serviceOptions {
	o := serviceOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
