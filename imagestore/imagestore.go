// Package imagestore uploads pictures to external object storage behind a
// narrow interface; the rest of the application never sees provider detail
// beyond the returned URL and opaque public ID.
package imagestore

import (
	"context"
	"errors"
)

// ErrUpload and ErrDelete wrap provider failures so callers can classify them
// without inspecting provider error types.
var (
	ErrUpload = errors.New("image upload failed")
	ErrDelete = errors.New("image delete failed")
)

// Store uploads and deletes images in external object storage
type Store interface {
	// Upload stores the image and returns its public URL and the storage key
	// needed to delete it later.
	Upload(ctx context.Context, data []byte, contentType, title string) (url string, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}
