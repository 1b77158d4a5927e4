// Package gcs implements document storage on Google Cloud Storage. Orders
// reference uploaded documents by object key only; this adapter is the single
// place that touches the bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// DocumentStorage stores order documents as objects in one GCS bucket.
type DocumentStorage struct {
	client *storage.Client
	bucket string
}

// NewDocumentStorage creates a document storage over the given bucket.
// Credentials are resolved from the environment by the storage client.
func NewDocumentStorage(ctx context.Context, bucket string) (*DocumentStorage, error) {
	if bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &DocumentStorage{
		client: client,
		bucket: bucket,
	}, nil
}

// Put uploads a document under the given key, overwriting any existing
// object. The key becomes the reference carried by order transitions.
func (s *DocumentStorage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	writer := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()
		return fmt.Errorf("upload object %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("upload object %s: %w", key, err)
	}

	return nil
}

// Remove deletes the objects behind the given keys. Keys that no longer
// exist are skipped; failures are aggregated so one stuck object does not
// hide the rest.
func (s *DocumentStorage) Remove(ctx context.Context, keys []string) error {
	var failures []error
	for _, key := range keys {
		err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
		if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			failures = append(failures, fmt.Errorf("delete object %s: %w", key, err))
		}
	}

	return errors.Join(failures...)
}

// Close releases the underlying client.
func (s *DocumentStorage) Close() error {
	return s.client.Close()
}
