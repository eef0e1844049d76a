package secrets

import (
	"context"
	"fmt"

	"deploy-launcher/core/storage"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
)

// ObjectSource reads a dotenv-formatted object from an S3 compatible bucket.
type ObjectSource struct {
	client storage.Client
	bucket string
	object string
}

// NewObjectSource creates a source for bucket/object.
func NewObjectSource(client storage.Client, bucket, object string) *ObjectSource {
	return &ObjectSource{client: client, bucket: bucket, object: object}
}

func (s *ObjectSource) Name() string {
	return SourceS3
}

func (s *ObjectSource) Load(ctx context.Context) (map[string]string, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get secrets object %s: %w", s.object, err)
	}
	defer obj.Close()

	vars, err := godotenv.Parse(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to parse secrets object %s: %w", s.object, err)
	}
	return vars, nil
}
