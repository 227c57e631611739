package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-adoption-backend/internal/domain/adoptionforms"
)

type checkRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptionforms.PeriodicCheck
	seq  int
	ord  map[string]int // orden de inserción por id
}

func NewPeriodicCheckRepo() adoptionforms.CheckRepository {
	return &checkRepo{
		byID: make(map[string]adoptionforms.PeriodicCheck),
		ord:  make(map[string]int),
	}
}

func (r *checkRepo) Create(ctx context.Context, c adoptionforms.PeriodicCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		return errors.New("check id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("check already exists")
	}

	r.byID[c.ID] = c
	r.seq++
	r.ord[c.ID] = r.seq
	return nil
}

func (r *checkRepo) GetByID(ctx context.Context, id string) (adoptionforms.PeriodicCheck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return adoptionforms.PeriodicCheck{}, ErrNotFound
	}
	return c, nil
}

func (r *checkRepo) ListByForm(ctx context.Context, formID string) ([]adoptionforms.PeriodicCheck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptionforms.PeriodicCheck, 0)
	for _, c := range r.byID {
		if c.FormID != formID {
			continue
		}
		out = append(out, c)
	}

	// Orden de inserción = orden de los chequeos.
	sort.Slice(out, func(i, j int) bool {
		return r.ord[out[i].ID] < r.ord[out[j].ID]
	})

	return out, nil
}
