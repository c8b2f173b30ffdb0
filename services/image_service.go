package services

import (
	"context"
	"log"

	"github.com/birdquest/birdquest/imagestore"
	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/repositories"
)

// ProfileImageService swaps a user's profile picture: the new picture is
// uploaded and linked before the old one is removed.
type ProfileImageService interface {
	Replace(ctx context.Context, userID int, upload *models.ImageUpload) (string, error)
}

// profileImageService implements ProfileImageService interface
type profileImageService struct {
	userRepo       repositories.UserRepository
	collectionRepo repositories.CollectionRepository
	imageStore     imagestore.Store
}

// NewProfileImageService creates a new profile image service
func NewProfileImageService(
	userRepo repositories.UserRepository,
	collectionRepo repositories.CollectionRepository,
	store imagestore.Store,
) ProfileImageService {
	return &profileImageService{
		userRepo:       userRepo,
		collectionRepo: collectionRepo,
		imageStore:     store,
	}
}

// Replace uploads the new picture, links it to the user and deletes the
// previous one. Old-picture cleanup is best-effort: the swap has already
// succeeded by then.
func (s *profileImageService) Replace(ctx context.Context, userID int, upload *models.ImageUpload) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, publicID, err := s.imageStore.Upload(ctx, upload.Data, upload.ContentType, upload.Filename)
	if err != nil {
		return "", err
	}

	imgID, err := s.collectionRepo.CreateImage(ctx, upload.Filename, url, publicID)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.SetProfileImage(ctx, userID, imgID); err != nil {
		return "", err
	}

	if user.ImageID != nil {
		old, err := s.collectionRepo.GetImage(ctx, *user.ImageID)
		if err != nil {
			log.Printf("Failed to load old profile image %d: %v", *user.ImageID, err)
			return url, nil
		}
		if err := s.collectionRepo.DeleteImage(ctx, old.ID); err != nil {
			log.Printf("Failed to delete old profile image row %d: %v", old.ID, err)
		}
		if old.PublicID != "" {
			if err := s.imageStore.Delete(ctx, old.PublicID); err != nil {
				log.Printf("Failed to delete old stored image %s: %v", old.PublicID, err)
			}
		}
	}

	return url, nil
}
