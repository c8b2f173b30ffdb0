// Package mocks provides testify mocks for the repository interfaces, used
// by service and middleware tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/birdquest/birdquest/models"
)

// MockUserRepository mocks repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ConsumeQuota(ctx context.Context, id int, limit int) error {
	args := m.Called(ctx, id, limit)
	return args.Error(0)
}

func (m *MockUserRepository) AddScore(ctx context.Context, id int, points int) (int, error) {
	args := m.Called(ctx, id, points)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) SetProfileImage(ctx context.Context, id int, imgID int) error {
	args := m.Called(ctx, id, imgID)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]models.UserListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserListing), args.Error(1)
}

// MockBirdRepository mocks repositories.BirdRepository
type MockBirdRepository struct {
	mock.Mock
}

func NewMockBirdRepository() *MockBirdRepository {
	return &MockBirdRepository{}
}

func (m *MockBirdRepository) FindByName(ctx context.Context, name string) (*models.Bird, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bird), args.Error(1)
}

func (m *MockBirdRepository) GetRareType(ctx context.Context, rareTypeID int) (*models.RareType, error) {
	args := m.Called(ctx, rareTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RareType), args.Error(1)
}

func (m *MockBirdRepository) GetAll(ctx context.Context) ([]models.BirdSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BirdSummary), args.Error(1)
}

func (m *MockBirdRepository) GetRareTypes(ctx context.Context) ([]models.RareType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RareType), args.Error(1)
}

func (m *MockBirdRepository) GetByRareType(ctx context.Context, rareTypeID int) ([]models.BirdSummary, error) {
	args := m.Called(ctx, rareTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BirdSummary), args.Error(1)
}

// MockCollectionRepository mocks repositories.CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func NewMockCollectionRepository() *MockCollectionRepository {
	return &MockCollectionRepository{}
}

func (m *MockCollectionRepository) Exists(ctx context.Context, userID, birdID int) (bool, error) {
	args := m.Called(ctx, userID, birdID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCollectionRepository) Add(ctx context.Context, userID, birdID, imgID int) error {
	args := m.Called(ctx, userID, birdID, imgID)
	return args.Error(0)
}

func (m *MockCollectionRepository) CreateImage(ctx context.Context, title, url, publicID string) (int, error) {
	args := m.Called(ctx, title, url, publicID)
	return args.Int(0), args.Error(1)
}

func (m *MockCollectionRepository) GetImage(ctx context.Context, imgID int) (*models.Image, error) {
	args := m.Called(ctx, imgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *MockCollectionRepository) DeleteImage(ctx context.Context, imgID int) error {
	args := m.Called(ctx, imgID)
	return args.Error(0)
}

func (m *MockCollectionRepository) GetByUser(ctx context.Context, userID int) ([]models.CollectionEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CollectionEntry), args.Error(1)
}

// MockAuditRepository mocks repositories.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) GetOrCreateMethod(ctx context.Context, method string) (int, error) {
	args := m.Called(ctx, method)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditRepository) GetOrCreateEndpoint(ctx context.Context, methodID int, path string) (int, error) {
	args := m.Called(ctx, methodID, path)
	return args.Int(0), args.Error(1)
}

func (m *MockAuditRepository) LogRequest(ctx context.Context, endpointID, userID int) error {
	args := m.Called(ctx, endpointID, userID)
	return args.Error(0)
}

func (m *MockAuditRepository) GetAPIStats(ctx context.Context) ([]models.APIStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.APIStat), args.Error(1)
}

func (m *MockAuditRepository) GetUserConsumption(ctx context.Context) ([]models.UserConsumption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserConsumption), args.Error(1)
}
