// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the spec
// document store: declared queue specs live as JSON objects in a bucket, where
// the drift feature enumerates them and the CLI/API read and write them. This
// abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the spec bucket.
//   - PutObject: Uploads a spec document.
//   - GetObject: Retrieves a spec document as a stream.
//   - ListObjects: Lists spec documents (supports prefix/recursive).
//   - RemoveObject: Deletes a spec document.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "queue-specs")
package storage
