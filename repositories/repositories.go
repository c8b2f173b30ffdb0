package repositories

import (
	"database/sql"
	"errors"
)

// Sentinel errors surfaced by the storage layer. Callers translate these to
// HTTP statuses; everything else is a generic storage failure.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrBirdNotFound        = errors.New("bird not found")
	ErrRareTypeNotFound    = errors.New("rare type not found")
	ErrQuotaExceeded       = errors.New("api consumption limit reached")
	ErrAlreadyInCollection = errors.New("bird already in collection")
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Bird       BirdRepository
	Collection CollectionRepository
	Audit      AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Bird:       NewBirdRepository(db),
		Collection: NewCollectionRepository(db),
		Audit:      NewAuditRepository(db),
	}
}
