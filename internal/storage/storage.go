package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

// Supported values of STORAGE_TYPE.
const (
	TypeLocal = "local"
	TypeGCS   = "gcs"
)

// Config selects and configures a blob store.
type Config struct {
	Type            string
	LocalPath       string
	GCSBucket       string
	CredentialsPath string
}

// New creates the blob store named by cfg.Type.
func New(ctx context.Context, cfg Config) (portssvc.BlobStore, error) {
	switch strings.ToLower(cfg.Type) {
	case "", TypeLocal:
		return NewLocalBlobStore(cfg.LocalPath)
	case TypeGCS:
		return NewGCSBlobStore(ctx, cfg.GCSBucket, cfg.CredentialsPath)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// GenerateObjectName builds a unique object name for an upload. Two uploads
// of the same file never share a name, even within the same second.
func GenerateObjectName(suggestedName string) string {
	return fmt.Sprintf("documents/%s/%d_%s", uuid.NewString(), time.Now().Unix(), sanitizeName(suggestedName))
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20, r == 0x7f:
			return -1
		}
		return r
	}, name)
}
