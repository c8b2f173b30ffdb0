package services

import (
	"context"

	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/repositories"
)

// AdminService exposes the read-only admin listings
type AdminService interface {
	GetAllUsers(ctx context.Context) ([]models.UserListing, error)
	GetAPIStats(ctx context.Context) ([]models.APIStat, error)
	GetUserConsumption(ctx context.Context) ([]models.UserConsumption, error)
}

// adminService implements AdminService interface
type adminService struct {
	userRepo  repositories.UserRepository
	auditRepo repositories.AuditRepository
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo repositories.UserRepository, auditRepo repositories.AuditRepository) AdminService {
	return &adminService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// GetAllUsers lists every account with its user type
func (s *adminService) GetAllUsers(ctx context.Context) ([]models.UserListing, error) {
	return s.userRepo.GetAll(ctx)
}

// GetAPIStats lists audited request counts per method and endpoint
func (s *adminService) GetAPIStats(ctx context.Context) ([]models.APIStat, error) {
	return s.auditRepo.GetAPIStats(ctx)
}

// GetUserConsumption lists audited request counts per user
func (s *adminService) GetUserConsumption(ctx context.Context) ([]models.UserConsumption, error) {
	return s.auditRepo.GetUserConsumption(ctx)
}
