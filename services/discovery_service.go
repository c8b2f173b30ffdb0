package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/birdquest/birdquest/classifier"
	"github.com/birdquest/birdquest/imagestore"
	"github.com/birdquest/birdquest/lang"
	"github.com/birdquest/birdquest/metrics"
	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/repositories"
)

// DiscoveryService owns the discovery workflow: quota, classification and the
// collection ledger. At most one collection entry may ever exist per
// (user, bird); the storage constraint is the authoritative guard and a
// conflicting insert is recovered as an "already found" outcome.
type DiscoveryService interface {
	AnalyzeBird(ctx context.Context, userID int, upload *models.ImageUpload) (*models.AnalysisResult, error)
}

// discoveryService implements DiscoveryService interface
type discoveryService struct {
	userRepo       repositories.UserRepository
	birdRepo       repositories.BirdRepository
	collectionRepo repositories.CollectionRepository
	classifier     classifier.Classifier
	imageStore     imagestore.Store
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(
	userRepo repositories.UserRepository,
	birdRepo repositories.BirdRepository,
	collectionRepo repositories.CollectionRepository,
	cls classifier.Classifier,
	store imagestore.Store,
) DiscoveryService {
	return &discoveryService{
		userRepo:       userRepo,
		birdRepo:       birdRepo,
		collectionRepo: collectionRepo,
		classifier:     cls,
		imageStore:     store,
	}
}

// AnalyzeBird runs one discovery call for the resolved user. Quota is
// consumed before the classifier is called and is not refunded on classifier
// failure: consumption counts attempts, not successes.
func (s *discoveryService) AnalyzeBird(ctx context.Context, userID int, upload *models.ImageUpload) (*models.AnalysisResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.ConsumeQuota(ctx, userID, models.QuotaLimit); err != nil {
		return nil, err
	}

	classification, err := s.classifier.Classify(ctx, upload.Data, upload.ContentType, upload.Filename)
	if err != nil {
		switch {
		case errors.Is(err, classifier.ErrTimeout):
			metrics.ClassifierRequests.WithLabelValues("timeout").Inc()
		default:
			metrics.ClassifierRequests.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	metrics.ClassifierRequests.WithLabelValues("ok").Inc()

	result := &models.AnalysisResult{
		Label:       classification.Label,
		Probability: classification.Probability,
		ClassID:     classification.ClassID,
		Score:       user.Score,
	}

	bird, err := s.birdRepo.FindByName(ctx, classification.Label)
	if errors.Is(err, repositories.ErrBirdNotFound) {
		result.Message = lang.BirdNotFoundInDatabase
		metrics.Discoveries.WithLabelValues("unmatched").Inc()
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	owned, err := s.collectionRepo.Exists(ctx, userID, bird.ID)
	if err != nil {
		return nil, err
	}
	if owned {
		result.Message = lang.BirdAlreadyFound
		metrics.Discoveries.WithLabelValues("already_found").Inc()
		return result, nil
	}

	newScore, rareLabel, err := s.recordDiscovery(ctx, userID, bird, upload)
	if errors.Is(err, repositories.ErrAlreadyInCollection) {
		// A concurrent request inserted the entry between the ownership check
		// and our insert. Same terminal outcome, no score change.
		result.Message = lang.BirdAlreadyFound
		metrics.Discoveries.WithLabelValues("already_found").Inc()
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	result.Message = lang.BirdDiscovered(rareLabel)
	result.Score = newScore
	metrics.Discoveries.WithLabelValues("discovered").Inc()
	return result, nil
}

// recordDiscovery uploads the picture, persists the image row and collection
// entry, and applies the rarity points. Returns the user's new score and the
// rarity label.
func (s *discoveryService) recordDiscovery(ctx context.Context, userID int, bird *models.Bird, upload *models.ImageUpload) (int, string, error) {
	url, publicID, err := s.imageStore.Upload(ctx, upload.Data, upload.ContentType, upload.Filename)
	if err != nil {
		return 0, "", err
	}

	imgID, err := s.collectionRepo.CreateImage(ctx, upload.Filename, url, publicID)
	if err != nil {
		return 0, "", err
	}

	if err := s.collectionRepo.Add(ctx, userID, bird.ID, imgID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyInCollection) {
			// Lost the race; the winner's picture stays, ours goes.
			s.cleanupImage(ctx, imgID, publicID)
		}
		return 0, "", err
	}

	rareType, err := s.birdRepo.GetRareType(ctx, bird.RareTypeID)
	if err != nil {
		return 0, "", fmt.Errorf("failed to resolve rarity for bird %d: %w", bird.ID, err)
	}

	newScore, err := s.userRepo.AddScore(ctx, userID, rareType.Score)
	if err != nil {
		return 0, "", err
	}

	return newScore, rareType.Label, nil
}

// cleanupImage removes an orphaned picture, best-effort
func (s *discoveryService) cleanupImage(ctx context.Context, imgID int, publicID string) {
	if err := s.collectionRepo.DeleteImage(ctx, imgID); err != nil {
		log.Printf("Failed to delete orphaned image row %d: %v", imgID, err)
	}
	if err := s.imageStore.Delete(ctx, publicID); err != nil {
		log.Printf("Failed to delete orphaned stored image %s: %v", publicID, err)
	}
}
