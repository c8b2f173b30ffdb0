package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/repositories"
)

// BirdCatalog is the reference data plus the caller's collection, grouped the
// way the collection page consumes it.
type BirdCatalog struct {
	Birds        []models.BirdSummary            `json:"birds"`
	RareTypes    []models.RareType               `json:"birdTypes"`
	GroupedBirds map[string][]models.BirdSummary `json:"groupedBirds"`
	Collections  map[string]models.Image         `json:"collections"`
}

// CollectionService assembles bird reference data and per-user collections
type CollectionService interface {
	GetCatalog(ctx context.Context, userID int) (*BirdCatalog, error)
}

// collectionService implements CollectionService interface
type collectionService struct {
	birdRepo       repositories.BirdRepository
	collectionRepo repositories.CollectionRepository
}

// NewCollectionService creates a new collection service
func NewCollectionService(birdRepo repositories.BirdRepository, collectionRepo repositories.CollectionRepository) CollectionService {
	return &collectionService{
		birdRepo:       birdRepo,
		collectionRepo: collectionRepo,
	}
}

// GetCatalog returns all birds, the rarity tiers, birds grouped per tier and
// the caller's collected pictures keyed by bird ID
func (s *collectionService) GetCatalog(ctx context.Context, userID int) (*BirdCatalog, error) {
	birds, err := s.birdRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load birds: %w", err)
	}

	rareTypes, err := s.birdRepo.GetRareTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rare types: %w", err)
	}

	grouped := make(map[string][]models.BirdSummary, len(rareTypes))
	for _, rareType := range rareTypes {
		byType, err := s.birdRepo.GetByRareType(ctx, rareType.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load birds for rare type %d: %w", rareType.ID, err)
		}
		grouped[strconv.Itoa(rareType.ID)] = byType
	}

	entries, err := s.collectionRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	collections := make(map[string]models.Image, len(entries))
	for _, entry := range entries {
		img, err := s.collectionRepo.GetImage(ctx, entry.ImageID)
		if err != nil {
			return nil, fmt.Errorf("failed to load collection image: %w", err)
		}
		collections[strconv.Itoa(entry.BirdID)] = *img
	}

	return &BirdCatalog{
		Birds:        birds,
		RareTypes:    rareTypes,
		GroupedBirds: grouped,
		Collections:  collections,
	}, nil
}
