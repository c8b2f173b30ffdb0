package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/repositories"
)

// ErrInvalidCredentials is returned when the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies login credentials against stored password hashes
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	// GetUserContext loads the account behind a session email, for the
	// check-auth endpoint.
	GetUserContext(ctx context.Context, email string) (*models.User, error)
}

// authService implements AuthService interface
type authService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Authenticate looks up the account by email and compares the bcrypt hash
func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserContext loads the account for a session email
func (s *authService) GetUserContext(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}
