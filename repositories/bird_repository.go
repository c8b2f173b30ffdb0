package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/birdquest/birdquest/models"
)

// BirdRepository interface defines read access to the bird and rarity
// reference data
type BirdRepository interface {
	// FindByName matches a classifier label against bird names, exact after
	// case-folding. Returns ErrBirdNotFound when no bird carries the name.
	FindByName(ctx context.Context, name string) (*models.Bird, error)
	GetRareType(ctx context.Context, rareTypeID int) (*models.RareType, error)
	GetAll(ctx context.Context) ([]models.BirdSummary, error)
	GetRareTypes(ctx context.Context) ([]models.RareType, error)
	GetByRareType(ctx context.Context, rareTypeID int) ([]models.BirdSummary, error)
}

// birdRepository implements BirdRepository interface
type birdRepository struct {
	db *sql.DB
}

// NewBirdRepository creates a new bird repository
func NewBirdRepository(db *sql.DB) BirdRepository {
	return &birdRepository{db: db}
}

// FindByName retrieves a bird whose name matches case-insensitively
func (r *birdRepository) FindByName(ctx context.Context, name string) (*models.Bird, error) {
	query := `
		SELECT bird_id, name, scientific_name, fun_fact, rare_type_id, created_at
		FROM birds
		WHERE name = ? COLLATE NOCASE
	`

	var bird models.Bird
	var scientificName, funFact sql.NullString

	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&bird.ID,
		&bird.Name,
		&scientificName,
		&funFact,
		&bird.RareTypeID,
		&bird.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBirdNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bird by name: %w", err)
	}

	if scientificName.Valid {
		bird.ScientificName = scientificName.String
	}
	if funFact.Valid {
		bird.FunFact = funFact.String
	}

	return &bird, nil
}

// GetRareType retrieves a rarity tier by ID
func (r *birdRepository) GetRareType(ctx context.Context, rareTypeID int) (*models.RareType, error) {
	query := `
		SELECT rare_type_id, rare_type, score
		FROM rare_types
		WHERE rare_type_id = ?
	`

	var rareType models.RareType
	err := r.db.QueryRowContext(ctx, query, rareTypeID).Scan(
		&rareType.ID,
		&rareType.Label,
		&rareType.Score,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRareTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rare type: %w", err)
	}

	return &rareType, nil
}

// GetAll retrieves every bird joined with its rarity
func (r *birdRepository) GetAll(ctx context.Context) ([]models.BirdSummary, error) {
	query := `
		SELECT b.bird_id, b.name, rt.rare_type, rt.score
		FROM birds b
		INNER JOIN rare_types rt ON b.rare_type_id = rt.rare_type_id
		ORDER BY b.name ASC
	`
	return r.queryBirdSummaries(ctx, query)
}

// GetRareTypes retrieves all rarity tiers
func (r *birdRepository) GetRareTypes(ctx context.Context) ([]models.RareType, error) {
	query := `
		SELECT rare_type_id, rare_type, score
		FROM rare_types
		ORDER BY score ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rare types: %w", err)
	}
	defer rows.Close()

	var rareTypes []models.RareType
	for rows.Next() {
		var rareType models.RareType
		if err := rows.Scan(&rareType.ID, &rareType.Label, &rareType.Score); err != nil {
			return nil, fmt.Errorf("failed to scan rare type: %w", err)
		}
		rareTypes = append(rareTypes, rareType)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rare types: %w", err)
	}

	return rareTypes, nil
}

// GetByRareType retrieves the birds of one rarity tier
func (r *birdRepository) GetByRareType(ctx context.Context, rareTypeID int) ([]models.BirdSummary, error) {
	query := `
		SELECT b.bird_id, b.name, rt.rare_type, rt.score
		FROM birds b
		INNER JOIN rare_types rt ON b.rare_type_id = rt.rare_type_id
		WHERE b.rare_type_id = ?
		ORDER BY b.name ASC
	`
	return r.queryBirdSummaries(ctx, query, rareTypeID)
}

func (r *birdRepository) queryBirdSummaries(ctx context.Context, query string, args ...interface{}) ([]models.BirdSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query birds: %w", err)
	}
	defer rows.Close()

	var birds []models.BirdSummary
	for rows.Next() {
		var bird models.BirdSummary
		if err := rows.Scan(&bird.ID, &bird.Name, &bird.RareType, &bird.Score); err != nil {
			return nil, fmt.Errorf("failed to scan bird: %w", err)
		}
		birds = append(birds, bird)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating birds: %w", err)
	}

	return birds, nil
}
