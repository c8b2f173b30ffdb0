package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/repositories/mocks"
)

func TestProfileImageReplace(t *testing.T) {
	ctx := context.Background()
	upload := &models.ImageUpload{
		Filename:    "portrait.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("fake image bytes"),
	}

	t.Run("first picture, nothing to delete", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		collectionRepo := mocks.NewMockCollectionRepository()
		store := &fakeStore{}
		service := NewProfileImageService(userRepo, collectionRepo, store)

		userRepo.On("GetByID", ctx, 1).Return(&models.User{ID: 1}, nil)
		collectionRepo.On("CreateImage", ctx, "portrait.jpg", "https://img.example/u", "pub-1").Return(5, nil)
		userRepo.On("SetProfileImage", ctx, 1, 5).Return(nil)

		url, err := service.Replace(ctx, 1, upload)
		assert.NoError(t, err)
		assert.Equal(t, "https://img.example/u", url)
		collectionRepo.AssertNotCalled(t, "DeleteImage", mock.Anything, mock.Anything)
		assert.Empty(t, store.deleted)
	})

	t.Run("previous picture is removed after the swap", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		collectionRepo := mocks.NewMockCollectionRepository()
		store := &fakeStore{}
		service := NewProfileImageService(userRepo, collectionRepo, store)

		oldID := 3
		userRepo.On("GetByID", ctx, 1).Return(&models.User{ID: 1, ImageID: &oldID}, nil)
		collectionRepo.On("CreateImage", ctx, "portrait.jpg", "https://img.example/u", "pub-1").Return(5, nil)
		userRepo.On("SetProfileImage", ctx, 1, 5).Return(nil)
		collectionRepo.On("GetImage", ctx, 3).Return(&models.Image{ID: 3, PublicID: "pub-old"}, nil)
		collectionRepo.On("DeleteImage", ctx, 3).Return(nil)

		url, err := service.Replace(ctx, 1, upload)
		assert.NoError(t, err)
		assert.Equal(t, "https://img.example/u", url)
		collectionRepo.AssertExpectations(t)
		assert.Equal(t, []string{"pub-old"}, store.deleted)
	})

	t.Run("old-picture cleanup failure does not fail the swap", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		collectionRepo := mocks.NewMockCollectionRepository()
		store := &fakeStore{}
		service := NewProfileImageService(userRepo, collectionRepo, store)

		oldID := 3
		userRepo.On("GetByID", ctx, 1).Return(&models.User{ID: 1, ImageID: &oldID}, nil)
		collectionRepo.On("CreateImage", ctx, "portrait.jpg", "https://img.example/u", "pub-1").Return(5, nil)
		userRepo.On("SetProfileImage", ctx, 1, 5).Return(nil)
		collectionRepo.On("GetImage", ctx, 3).Return(nil, assert.AnError)

		url, err := service.Replace(ctx, 1, upload)
		assert.NoError(t, err)
		assert.Equal(t, "https://img.example/u", url)
	})
}
