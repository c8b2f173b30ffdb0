package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/birdquest/birdquest/models"
)

// CollectionRepository interface defines the collection ledger's storage
// operations: image rows and the uniqueness-guarded (user, bird) entries.
type CollectionRepository interface {
	Exists(ctx context.Context, userID, birdID int) (bool, error)
	// Add inserts a collection entry. A UNIQUE violation on (user, bird)
	// is reported as ErrAlreadyInCollection so the caller can recover the
	// concurrent-duplicate race as an "already found" outcome.
	Add(ctx context.Context, userID, birdID, imgID int) error
	CreateImage(ctx context.Context, title, url, publicID string) (int, error)
	GetImage(ctx context.Context, imgID int) (*models.Image, error)
	DeleteImage(ctx context.Context, imgID int) error
	GetByUser(ctx context.Context, userID int) ([]models.CollectionEntry, error)
}

// collectionRepository implements CollectionRepository interface
type collectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *sql.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

// Exists reports whether the user already owns the bird
func (r *collectionRepository) Exists(ctx context.Context, userID, birdID int) (bool, error) {
	query := `
		SELECT collection_id
		FROM collections
		WHERE user_id = ? AND bird_id = ?
	`

	var id int
	err := r.db.QueryRowContext(ctx, query, userID, birdID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check collection: %w", err)
	}

	return true, nil
}

// Add inserts a collection entry for (user, bird, image)
func (r *collectionRepository) Add(ctx context.Context, userID, birdID, imgID int) error {
	query := `
		INSERT INTO collections (user_id, bird_id, img_id)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, userID, birdID, imgID)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrAlreadyInCollection
		}
		return fmt.Errorf("failed to add bird to collection: %w", err)
	}

	return nil
}

// CreateImage inserts an image row and returns its ID
func (r *collectionRepository) CreateImage(ctx context.Context, title, url, publicID string) (int, error) {
	if title == "" {
		title = "bird_image"
	}

	query := `
		INSERT INTO images (img_title, img_url, img_public_id)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, title, url, publicID)
	if err != nil {
		return 0, fmt.Errorf("failed to create image entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted ID: %w", err)
	}

	return int(id), nil
}

// GetImage retrieves an image row by ID
func (r *collectionRepository) GetImage(ctx context.Context, imgID int) (*models.Image, error) {
	query := `
		SELECT img_id, img_title, img_url, img_public_id
		FROM images
		WHERE img_id = ?
	`

	var img models.Image
	var title sql.NullString

	err := r.db.QueryRowContext(ctx, query, imgID).Scan(&img.ID, &title, &img.URL, &img.PublicID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("image %d not found", imgID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	if title.Valid {
		img.Title = title.String
	}

	return &img, nil
}

// DeleteImage removes an image row
func (r *collectionRepository) DeleteImage(ctx context.Context, imgID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE img_id = ?`, imgID)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// GetByUser retrieves a user's collection entries
func (r *collectionRepository) GetByUser(ctx context.Context, userID int) ([]models.CollectionEntry, error) {
	query := `
		SELECT collection_id, user_id, bird_id, img_id, created_at
		FROM collections
		WHERE user_id = ?
		ORDER BY created_at ASC, collection_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}
	defer rows.Close()

	var entries []models.CollectionEntry
	for rows.Next() {
		var entry models.CollectionEntry
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.BirdID, &entry.ImageID, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection: %w", err)
	}

	return entries, nil
}
