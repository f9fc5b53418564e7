package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pamoja-lab/cdf-tracker/pkg/config"
	"github.com/pamoja-lab/cdf-tracker/pkg/logutils"
)

// Store abstracts the object storage collaborator so handlers can be tested
// against a fake. The real implementation talks to a MinIO/S3 endpoint.
type Store interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) error
	PresignGet(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

// MinioStore implements Store against one bucket of a MinIO endpoint. The
// client is constructed once in main and injected; there is no package-level
// instance.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	s := &MinioStore{client: client, bucket: cfg.Minio.Bucket}
	exists, err := client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		logutils.Log.Infof("created bucket %s", s.bucket)
	}
	return s, nil
}

func (s *MinioStore) Put(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *MinioStore) PresignGet(ctx context.Context, objectName string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, ttl, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

var extPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// ObjectName builds the storage key for a project photo:
// projects/{projectID}/{uuid}.{ext}. The uuid makes every upload globally
// unique regardless of the client-supplied filename. The extension is kept
// only when it is plain lowercase alphanumerics, anything else (path
// separators included) falls back to jpg so the key stays a flat three
// segment path.
func ObjectName(projectID uint, filename string) string {
	ext := "jpg"
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		if cand := strings.ToLower(filename[i+1:]); extPattern.MatchString(cand) {
			ext = cand
		}
	}
	return fmt.Sprintf("projects/%d/%s.%s", projectID, uuid.New().String(), ext)
}
