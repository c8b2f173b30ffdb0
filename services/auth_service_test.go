package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/repositories"
	"github.com/birdquest/birdquest/repositories/mocks"
)

func TestAuthServiceAuthenticate(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &models.User{ID: 1, Email: "alice@example.com", PasswordHash: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
		service := NewAuthService(userRepo)

		got, err := service.Authenticate(ctx, "alice@example.com", "correct horse")
		assert.NoError(t, err)
		assert.Equal(t, 1, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
		service := NewAuthService(userRepo)

		got, err := service.Authenticate(ctx, "alice@example.com", "wrong")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repositories.ErrUserNotFound)
		service := NewAuthService(userRepo)

		got, err := service.Authenticate(ctx, "nobody@example.com", "whatever")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})
}
