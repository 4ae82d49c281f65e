package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"dailypay-backend/internal/logger"
	"dailypay-backend/internal/storage"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

var (
	ErrNoFile          = appErrors.Validation("No file uploaded", nil)
	ErrUnsupportedType = appErrors.Validation("Unsupported file type", nil)
)

type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Response struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type Service struct {
	store    storage.FileStore
	maxBytes int64
	now      func() time.Time
}

func NewService(store storage.FileStore, maxBytes int64, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, maxBytes: maxBytes, now: now}
}

// Save stores one file for an authenticated account. The stored name never
// reuses the client's base name.
func (s *Service) Save(ctx context.Context, accountID uuid.UUID, f *File) (*Response, error) {
	if f == nil || f.Body == nil || f.Size == 0 {
		return nil, ErrNoFile
	}
	if s.maxBytes > 0 && f.Size > s.maxBytes {
		return nil, appErrors.NewAppError(appErrors.CodePayloadTooLarge,
			fmt.Sprintf("File exceeds %d bytes", s.maxBytes), nil)
	}

	contentType := normalizeType(f.ContentType, f.Name)
	if !allowedTypes[contentType] {
		return nil, ErrUnsupportedType
	}

	name := storage.ObjectName(f.Name, s.now())
	body := f.Body
	if s.maxBytes > 0 {
		body = io.LimitReader(body, s.maxBytes)
	}

	url, err := s.store.Save(ctx, name, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	logger.Info("File uploaded",
		zap.String("account_id", accountID.String()),
		zap.String("name", name),
		zap.String("content_type", contentType),
		zap.Int64("size", f.Size),
		zap.String("event", "file_uploaded"),
	)
	return &Response{URL: url, Name: name}, nil
}

func normalizeType(contentType, name string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt != "application/octet-stream" {
		return strings.ToLower(mt)
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		mt, _, _ := mime.ParseMediaType(byExt)
		return mt
	}
	return ""
}
