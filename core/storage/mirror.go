package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"i18n-sync/core/reconcile"
	"i18n-sync/core/translation"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Mirror uploads fetched remote translations to a bucket.
type Mirror struct {
	client Client
	bucket string
	prefix string
	logger *zap.Logger
}

var _ reconcile.Snapshotter = (*Mirror)(nil)

// NewMirror creates a mirror writing below prefix in bucket.
func NewMirror(client Client, bucket, prefix string, l *zap.Logger) *Mirror {
	if l == nil {
		l = zap.NewNop()
	}
	return &Mirror{client: client, bucket: bucket, prefix: prefix, logger: l}
}

// EnsureBucket creates the bucket if it does not exist.
func (m *Mirror) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}

	m.logger.Info("Creating snapshot bucket", zap.String("bucket", m.bucket))
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating bucket %s: %w", m.bucket, err)
	}
	return nil
}

// ObjectKey returns the key a language is stored under.
func (m *Mirror) ObjectKey(languageCode string) string {
	return path.Join(m.prefix, languageCode+".json")
}

// Snapshot uploads tree as <prefix>/<languageCode>.json.
func (m *Mirror) Snapshot(ctx context.Context, languageCode string, tree *translation.Node) error {
	data, err := translation.EncodeTree(tree)
	if err != nil {
		return err
	}

	key := m.ObjectKey(languageCode)
	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}

	m.logger.Debug("Mirrored remote translation", zap.String("bucket", m.bucket), zap.String("key", key))
	return nil
}
