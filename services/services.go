package services

import (
	"github.com/birdquest/birdquest/classifier"
	"github.com/birdquest/birdquest/imagestore"
	"github.com/birdquest/birdquest/repositories"
)

// Services holds all service instances
type Services struct {
	Discovery    DiscoveryService
	Collection   CollectionService
	Admin        AdminService
	Auth         AuthService
	ProfileImage ProfileImageService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, cls classifier.Classifier, store imagestore.Store) *Services {
	return &Services{
		Discovery:    NewDiscoveryService(repos.User, repos.Bird, repos.Collection, cls, store),
		Collection:   NewCollectionService(repos.Bird, repos.Collection),
		Admin:        NewAdminService(repos.User, repos.Audit),
		Auth:         NewAuthService(repos.User),
		ProfileImage: NewProfileImageService(repos.User, repos.Collection, store),
	}
}
