package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-adoption-backend/internal/domain/adoptionposts"
)

type postRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptionposts.AdoptionPost
}

func NewAdoptionPostRepo() adoptionposts.Repository {
	return &postRepo{
		byID: make(map[string]adoptionposts.AdoptionPost),
	}
}

func (r *postRepo) Create(ctx context.Context, p adoptionposts.AdoptionPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		return errors.New("adoption post id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("adoption post already exists")
	}

	r.byID[p.ID] = p
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (adoptionposts.AdoptionPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return adoptionposts.AdoptionPost{}, ErrNotFound
	}
	return p, nil
}

func (r *postRepo) Update(ctx context.Context, p adoptionposts.AdoptionPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *postRepo) List(ctx context.Context) ([]adoptionposts.AdoptionPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptionposts.AdoptionPost, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
