// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to read objects from AWS S3 or self-hosted
// MinIO. The launcher uses it to fetch a dotenv-formatted secrets object.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream. A missing object is reported
//     by GetObject itself.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "deploy-secrets")
package storage
