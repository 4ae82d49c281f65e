package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"dailypay-backend/internal/config"
)

//go:generate mockgen -destination=mocks/storage_mock.go -package=mocks dailypay-backend/internal/storage FileStore,ObjectPutter

// FileStore persists an uploaded file and returns the URL it is served from.
type FileStore interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// New picks the backend named by UPLOAD_DRIVER.
func New(ctx context.Context, cfg config.UploadConfig) (FileStore, error) {
	switch cfg.Driver {
	case "", "disk":
		return NewDiskStore(cfg.Dir, cfg.PublicBaseURL)
	case "s3":
		return NewS3StoreFromConfig(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.Driver)
	}
}

// ObjectName builds "<unix-ms>-<random><ext>" from the client's file name.
// Only the extension of original is kept.
func ObjectName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return fmt.Sprintf("%d-%d%s", now.UnixMilli(), rand.IntN(1_000_000_000), ext)
}

func joinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + name
}
