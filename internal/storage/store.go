// Package storage provides the object-storage port and its S3 implementation.
package storage

import (
	"context"
	"time"
)

// SignedURLTTL is the validity window of presigned access URLs. The signed
// URL (not the object key) is what gets persisted on a post, so stored image
// references stop resolving after this window.
const SignedURLTTL = time.Hour

// ObjectStore is the port for the object-storage bucket holding post images.
type ObjectStore interface {
	// Put uploads body under key with the given content type.
	Put(ctx context.Context, key string, body []byte, contentType string) error
	// PresignGet returns a time-limited signed URL granting read access to key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
