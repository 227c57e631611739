package adoptionposts

import "context"

type Repository interface {
	Create(ctx context.Context, p AdoptionPost) error
	GetByID(ctx context.Context, id string) (AdoptionPost, error)
	Update(ctx context.Context, p AdoptionPost) error
	List(ctx context.Context) ([]AdoptionPost, error)
}
