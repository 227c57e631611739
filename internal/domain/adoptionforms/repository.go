package adoptionforms

import (
	"context"
	"time"
)

// Repository persiste formularios de adopción.
type Repository interface {
	Create(ctx context.Context, f AdoptionForm) error
	GetByID(ctx context.Context, id string) (AdoptionForm, error)
	Update(ctx context.Context, f AdoptionForm) error
	List(ctx context.Context, filter ListFilter, page PageRequest) (FormPage, error)

	// ListDue devuelve los formularios con next_check_date vencida
	// (<= before). Lo consume el job de recordatorios.
	ListDue(ctx context.Context, before time.Time) ([]AdoptionForm, error)
}

// CheckRepository es el ledger append-only de chequeos periódicos.
type CheckRepository interface {
	Create(ctx context.Context, c PeriodicCheck) error
	GetByID(ctx context.Context, id string) (PeriodicCheck, error)
	ListByForm(ctx context.Context, formID string) ([]PeriodicCheck, error)
}

// ListFilter filtra por igualdad + búsqueda libre.
// Query busca solo en el allow-list: reason, adopter.name, adopter.email.
type ListFilter struct {
	SenderID string
	PetID    string
	PostID   string
	Status   Status
	Query    string
}

type PageRequest struct {
	Page   int    // default 1
	Limit  int    // default 5
	SortBy string // default "createdAt" (descendente)
}

const (
	DefaultPage  = 1
	DefaultLimit = 5
	SortCreated  = "createdAt"
	SortUpdated  = "updatedAt"
)

// Normalize aplica los defaults de paginación.
func (p PageRequest) Normalize() PageRequest {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	switch p.SortBy {
	case SortCreated, SortUpdated:
	default:
		p.SortBy = SortCreated
	}
	return p
}

// FormPage es una página de resultados al estilo del plugin de paginación:
// totalPages = ceil(totalResults/limit).
type FormPage struct {
	Results      []AdoptionForm
	Page         int
	Limit        int
	TotalPages   int
	TotalResults int
}
