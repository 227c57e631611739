package adoptionposts

import "time"

// Status define el estado de publicación de un post de adopción.
// @Enum Pending, Available, Adopted
type Status string

const (
	StatusPending   Status = "Pending"
	StatusAvailable Status = "Available"
	StatusAdopted   Status = "Adopted"
)

// AdoptionPost es la publicación que ofrece una mascota en adopción.
// Un AdoptionForm siempre referencia un post.
type AdoptionPost struct {
	ID string

	PetID    string
	AuthorID string

	Title       string
	Description string

	ImageURLs []string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
