// Package storage mirrors remote translation snapshots to object storage.
//
// It wraps the MinIO Go client behind a small Client interface so the mirror
// can be tested with core/storage/mocks. Both AWS S3 and self-hosted MinIO
// are supported.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	mirror := storage.NewMirror(client, cfg.Storage.Bucket, cfg.Storage.Prefix, log)
//	err = mirror.EnsureBucket(ctx)
package storage
