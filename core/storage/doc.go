// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that feed files can be read from, and result
// exports written to, AWS S3 or a self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Helpers
//
//   - EnsureBucket: creates the bucket on first use.
//   - ReadObject: downloads a feed file into memory.
//   - Upload: stores an exported file.
//   - ListKeys: lists available feed files under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	data, err := storage.ReadObject(ctx, client, "feeds", "inbound/erp.csv")
package storage
