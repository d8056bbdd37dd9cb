package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"villamarket/internal/domain"
)

// MediaService stores uploaded images and serves them back. Object names
// are prefixed with a fresh UUID so distinct uploads of the same filename
// never collide.
type MediaService struct {
	store      domain.ObjectStore
	publicHost string
	bucket     string
}

func NewMediaService(store domain.ObjectStore, publicHost, bucket string) *MediaService {
	return &MediaService{store: store, publicHost: publicHost, bucket: bucket}
}

func (s *MediaService) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	if filename == "" {
		return "", domain.E(domain.KindInvalid, "file is required")
	}
	object := uuid.NewString() + "_" + filename
	if err := s.store.Put(ctx, object, contentType, r, size); err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s/%s/%s", s.publicHost, s.bucket, object), nil
}

func (s *MediaService) Fetch(ctx context.Context, object string) (io.ReadCloser, string, error) {
	return s.store.Get(ctx, object)
}
