package storage

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

// GCSBlobStore stores files in a Google Cloud Storage bucket.
type GCSBlobStore struct {
	client *storage.Client
	bucket string
}

// NewGCSBlobStore connects to bucket. Without credentialsPath the
// application default credentials are used.
func NewGCSBlobStore(ctx context.Context, bucket, credentialsPath string) (*GCSBlobStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS bucket name is required")
	}
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSBlobStore{client: client, bucket: bucket}, nil
}

var _ portssvc.BlobStore = (*GCSBlobStore)(nil)

// Save uploads data as a new object and returns its object name.
func (g *GCSBlobStore) Save(ctx context.Context, data []byte, suggestedName string) (string, error) {
	objectName := GenerateObjectName(suggestedName)
	obj := g.client.Bucket(g.bucket).Object(objectName).If(storage.Conditions{DoesNotExist: true})

	w := obj.NewWriter(ctx)
	w.ContentType = http.DetectContentType(data)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload %s: %w", objectName, err)
	}
	return objectName, nil
}

// Close releases the underlying client.
func (g *GCSBlobStore) Close() error {
	return g.client.Close()
}
