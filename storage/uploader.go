package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored tournament logo: the object key under
// which it lives, its public URL and the ETag reported by the bucket.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader owns the object storage behind tournament logos. A nil
// uploader means storage is not configured and logo endpoints are off.
type FileUploader interface {
	// Upload streams a logo body under the given key.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete removes a previously uploaded logo; called when a tournament
	// is deleted or its logo replaced.
	Delete(ctx context.Context, key string) error

	// GetPublicURL resolves a stored key to the URL clients render.
	GetPublicURL(key string) string
}
