package adoptionposts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/ports/blobstore"
	"pet-adoption-backend/internal/ports/moderation"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPet      = errors.New("invalid pet id")
	ErrNotFound        = errors.New("adoption post not found")
	ErrContentRejected = errors.New("content rejected by moderation")
)

type Service struct {
	repo       Repository
	petsRepo   pets.Repository
	classifier moderation.Classifier
	blobs      blobstore.Store
	now        func() time.Time
}

func NewService(repo Repository, petsRepo pets.Repository, classifier moderation.Classifier, blobs blobstore.Store) *Service {
	if classifier == nil {
		classifier = moderation.NopClassifier{}
	}
	return &Service{
		repo:       repo,
		petsRepo:   petsRepo,
		classifier: classifier,
		blobs:      blobs,
		now:        time.Now,
	}
}

type CreateInput struct {
	PetID       string
	AuthorID    string
	Title       string
	Description string
	Images      [][]byte
}

// Create publica un post de adopción. El texto y la primera imagen pasan
// por el clasificador de contenido; un veredicto dañino aborta la creación.
// Recién después se suben las imágenes y se persiste el post.
func (s *Service) Create(ctx context.Context, in CreateInput) (AdoptionPost, error) {
	if strings.TrimSpace(in.AuthorID) == "" {
		return AdoptionPost{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return AdoptionPost{}, ErrInvalidInput
	}

	petID := strings.TrimSpace(in.PetID)
	if petID == "" {
		return AdoptionPost{}, ErrInvalidPet
	}
	if _, err := s.petsRepo.GetByID(ctx, petID); err != nil {
		return AdoptionPost{}, ErrInvalidPet
	}

	text := strings.TrimSpace(in.Title + "\n" + in.Description)
	var firstImage []byte
	if len(in.Images) > 0 {
		firstImage = in.Images[0]
	}

	verdict, err := s.classifier.Classify(ctx, text, firstImage)
	if err == nil && verdict.CombinedAssessment.IsHarmful {
		return AdoptionPost{}, fmt.Errorf("%w: %s", ErrContentRejected, verdict.CombinedAssessment.Reason)
	}
	// Si el clasificador falla, el post sigue (mismo criterio que el
	// veredicto de fallback: sin señal, no bloqueamos).

	urls := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if len(img) == 0 {
			continue
		}
		u, err := s.blobs.Upload(ctx, img)
		if err != nil {
			return AdoptionPost{}, fmt.Errorf("%w: %v", blobstore.ErrUpload, err)
		}
		urls = append(urls, u)
	}

	now := s.now()
	p := AdoptionPost{
		ID:          uuid.NewString(),
		PetID:       petID,
		AuthorID:    strings.TrimSpace(in.AuthorID),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ImageURLs:   urls,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return AdoptionPost{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (AdoptionPost, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AdoptionPost{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]AdoptionPost, error) {
	return s.repo.List(ctx)
}
