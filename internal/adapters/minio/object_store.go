package minioad

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"villamarket/internal/domain"
)

// ObjectStore is the media service's blob backend on MinIO.
type ObjectStore struct {
	c      *minio.Client
	bucket string
}

func New(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*ObjectStore, error) {
	c, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &ObjectStore{c: c, bucket: bucket}, nil
}

// EnsureBucket creates the bucket if it does not exist yet. Called once at
// service start.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	ok, err := s.c.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return s.c.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *ObjectStore) Put(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	_, err := s.c.PutObject(ctx, s.bucket, name, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return domain.Wrap(domain.KindUpstream, "object store write failed", err)
	}
	return nil
}

func (s *ObjectStore) Get(ctx context.Context, name string) (io.ReadCloser, string, error) {
	obj, err := s.c.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", domain.Wrap(domain.KindUpstream, "object store read failed", err)
	}
	// GetObject is lazy; Stat forces the first request and surfaces NoSuchKey.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", domain.E(domain.KindNotFound, "Image not found")
		}
		return nil, "", domain.Wrap(domain.KindUpstream, "object store read failed", err)
	}
	return obj, info.ContentType, nil
}
