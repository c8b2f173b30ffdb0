package imagestore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Config holds Cloudinary credentials
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// cloudinaryStore implements Store against Cloudinary
type cloudinaryStore struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a Store backed by Cloudinary
func NewCloudinaryStore(cfg Config) (Store, error) {
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}

	folder := cfg.Folder
	if folder == "" {
		folder = "bird-quest"
	}

	return &cloudinaryStore{client: client, folder: folder}, nil
}

// Upload stores the image and returns its secure URL and public ID
func (s *cloudinaryStore) Upload(ctx context.Context, data []byte, contentType, title string) (string, string, error) {
	result, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if result.Error.Message != "" {
		return "", "", fmt.Errorf("%w: %s", ErrUpload, result.Error.Message)
	}

	return result.SecureURL, result.PublicID, nil
}

// Delete removes the image identified by its public ID
func (s *cloudinaryStore) Delete(ctx context.Context, publicID string) error {
	result, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("%w: %s", ErrDelete, result.Result)
	}

	return nil
}
