package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-backend/internal/ports/blobstore"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo  Repository
	blobs blobstore.Store
	now   func() time.Time
}

func NewService(repo Repository, blobs blobstore.Store) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name        string
	Breed       string
	Age         int
	Description string
	Images      [][]byte
}

// Create da de alta una mascota. Las imágenes se suben primero al blob
// store; si alguna subida falla, no se persiste nada.
func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	urls := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if len(img) == 0 {
			continue
		}
		u, err := s.blobs.Upload(ctx, img)
		if err != nil {
			return Pet{}, fmt.Errorf("%w: %v", blobstore.ErrUpload, err)
		}
		urls = append(urls, u)
	}

	now := s.now()
	p := Pet{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Breed:          strings.TrimSpace(in.Breed),
		Age:            in.Age,
		Description:    strings.TrimSpace(in.Description),
		ImageURLs:      urls,
		FormRequestIDs: []string{},
		AdopterUserIDs: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}
