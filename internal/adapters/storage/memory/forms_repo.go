package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-backend/internal/domain/adoptionforms"
)

type formRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptionforms.AdoptionForm
}

func NewAdoptionFormRepo() adoptionforms.Repository {
	return &formRepo{
		byID: make(map[string]adoptionforms.AdoptionForm),
	}
}

func (r *formRepo) Create(ctx context.Context, f adoptionforms.AdoptionForm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == "" {
		return errors.New("form id required")
	}
	if _, exists := r.byID[f.ID]; exists {
		return errors.New("form already exists")
	}

	r.byID[f.ID] = cloneForm(f)
	return nil
}

func (r *formRepo) GetByID(ctx context.Context, id string) (adoptionforms.AdoptionForm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok {
		return adoptionforms.AdoptionForm{}, ErrNotFound
	}
	return cloneForm(f), nil
}

func (r *formRepo) Update(ctx context.Context, f adoptionforms.AdoptionForm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[f.ID]; !ok {
		return ErrNotFound
	}
	r.byID[f.ID] = cloneForm(f)
	return nil
}

func (r *formRepo) List(ctx context.Context, filter adoptionforms.ListFilter, page adoptionforms.PageRequest) (adoptionforms.FormPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page = page.Normalize()

	matched := make([]adoptionforms.AdoptionForm, 0)
	for _, f := range r.byID {
		if !matchForm(f, filter) {
			continue
		}
		matched = append(matched, cloneForm(f))
	}

	// Orden descendente por el campo pedido (default createdAt).
	sort.Slice(matched, func(i, j int) bool {
		return sortKey(matched[i], page.SortBy).After(sortKey(matched[j], page.SortBy))
	})

	total := len(matched)
	totalPages := (total + page.Limit - 1) / page.Limit

	start := (page.Page - 1) * page.Limit
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return adoptionforms.FormPage{
		Results:      matched[start:end],
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   totalPages,
		TotalResults: total,
	}, nil
}

func (r *formRepo) ListDue(ctx context.Context, before time.Time) ([]adoptionforms.AdoptionForm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptionforms.AdoptionForm, 0)
	for _, f := range r.byID {
		if f.NextCheckDate == nil {
			continue
		}
		if f.NextCheckDate.After(before) {
			continue
		}
		out = append(out, cloneForm(f))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].NextCheckDate.Before(*out[j].NextCheckDate)
	})

	return out, nil
}

func matchForm(f adoptionforms.AdoptionForm, filter adoptionforms.ListFilter) bool {
	if filter.SenderID != "" && f.SenderID != filter.SenderID {
		return false
	}
	if filter.PetID != "" && f.PetID != filter.PetID {
		return false
	}
	if filter.PostID != "" && f.AdoptionPostID != filter.PostID {
		return false
	}
	if filter.Status != "" && f.Status != filter.Status {
		return false
	}

	// Búsqueda libre solo sobre el allow-list: reason, adopter.name,
	// adopter.email.
	if q := strings.TrimSpace(filter.Query); q != "" {
		hay := strings.ToLower(f.Reason + " " + f.Adopter.Name + " " + f.Adopter.Email)
		if !strings.Contains(hay, strings.ToLower(q)) {
			return false
		}
	}

	return true
}

func sortKey(f adoptionforms.AdoptionForm, sortBy string) time.Time {
	if sortBy == adoptionforms.SortUpdated {
		return f.UpdatedAt
	}
	return f.CreatedAt
}

// cloneForm copia el slice de IDs para que los callers no muten el estado
// interno del repo.
func cloneForm(f adoptionforms.AdoptionForm) adoptionforms.AdoptionForm {
	ids := make([]string, len(f.PeriodicCheckIDs))
	copy(ids, f.PeriodicCheckIDs)
	f.PeriodicCheckIDs = ids
	return f
}
