package image

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/go-restaurant-api/internal/domain"
	s3infra "github.com/go-restaurant-api/internal/infrastructure/s3"
	"github.com/go-restaurant-api/internal/pkg/id"
)

// keyPrefix is where uploaded images live in the bucket.
const keyPrefix = "image/"

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// Service stores uploaded images and serves them back by name. Entities
// keep only the bare name returned by Save.
type Service interface {
	Save(ctx context.Context, input UploadInput) (string, error)
	Open(ctx context.Context, name string) (*s3infra.Object, error)
	Delete(ctx context.Context, name string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	Download(ctx context.Context, key string) (*s3infra.Object, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	store objectStore
}

func NewService(store objectStore) Service {
	return &service{store: store}
}

// Save uploads the image under a new time-ordered name that keeps the
// original extension.
func (s *service) Save(ctx context.Context, input UploadInput) (string, error) {
	name := id.New() + strings.ToLower(path.Ext(sanitizeFilename(input.Filename)))
	ct := input.ContentType
	if ct == "" || ct == "application/octet-stream" {
		ct = contentTypeFromName(name)
	}
	if err := s.store.Upload(ctx, keyPrefix+name, input.Reader, ct); err != nil {
		return "", err
	}
	return name, nil
}

func (s *service) Open(ctx context.Context, name string) (*s3infra.Object, error) {
	if !validName(name) {
		return nil, domain.NewError(domain.ErrNotFound, "Image not found")
	}
	obj, err := s.store.Download(ctx, keyPrefix+name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrNotFound, "Image not found")
	}
	if err != nil {
		return nil, err
	}
	if obj.ContentType == "" || obj.ContentType == "application/octet-stream" {
		obj.ContentType = contentTypeFromName(name)
	}
	return obj, nil
}

func (s *service) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return nil
	}
	return s.store.Delete(ctx, keyPrefix+name)
}

// validName rejects anything that would escape the image prefix.
func validName(name string) bool {
	return name != "" && sanitizeFilename(name) == name
}

func contentTypeFromName(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// sanitizeFilename strips directory components and keeps only safe characters
// (letters, digits, dot, hyphen, underscore).
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." && result != ".." {
		return result
	}
	return "_"
}
