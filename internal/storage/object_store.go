// Package storage issues pre-signed upload URLs directly against an
// S3-compatible store, for deployments where the console holds storage
// credentials instead of asking the backend to presign.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"adminpro/console/internal/api"
	"adminpro/console/internal/config"
	"adminpro/console/internal/ids"
)

type ObjectStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &ObjectStore{client: client, cfg: cfg}, nil
}

func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.Bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.cfg.Bucket, err)
		}
	}
	return nil
}

// PresignUploads implements upload.Presigner with locally issued pre-signed
// PUT URLs, one per file, index-aligned with the input. The category becomes
// the leading key segment, matching the backend presigner's layout.
func (s *ObjectStore) PresignUploads(ctx context.Context, category string, files []api.FileSpec) ([]api.UploadDescriptor, error) {
	descriptors := make([]api.UploadDescriptor, len(files))
	for i, file := range files {
		objectKey := s.buildObjectKey(category, file.Name)

		signed, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, objectKey, s.cfg.PresignTTL)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", file.Name, err)
		}

		descriptors[i] = api.UploadDescriptor{
			UploadURL:      signed.String(),
			KeyWithBaseURL: s.buildPublicURL(objectKey),
		}
	}
	return descriptors, nil
}

func (s *ObjectStore) buildObjectKey(category, fileName string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	name := fmt.Sprintf("%s-%s", ids.New(), path.Base(fileName))
	if category == "" {
		return path.Join(datePrefix, name)
	}
	return path.Join(category, datePrefix, name)
}

func (s *ObjectStore) buildPublicURL(objectKey string) string {
	base := strings.TrimSuffix(s.cfg.Endpoint, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/%s/%s", base, s.cfg.Bucket, objectKey)
}
