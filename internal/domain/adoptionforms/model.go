package adoptionforms

import "time"

// Address es la dirección declarada por el adoptante.
type Address struct {
	Province string
	District string
	Ward     string
	Detail   string
}

// Adopter es el snapshot de contacto del adoptante al momento de enviar
// el formulario (no una referencia viva al usuario).
type Adopter struct {
	Name    string
	Email   string
	Phone   string
	Address Address
}

// AdoptionForm es la solicitud de adopción entre un usuario y un post.
// Nunca se borra (sirve de auditoría).
type AdoptionForm struct {
	ID string

	AdoptionPostID string
	PetID          string
	SenderID       string

	Adopter Adopter
	Reason  string

	Status Status

	// ApprovedDate se fija una sola vez, al entrar en seguimiento activo.
	ApprovedDate *time.Time

	// NextCheckDate se recalcula en cada chequeo; nil = sin seguimiento
	// pendiente (o seguimiento completado).
	NextCheckDate *time.Time

	// PeriodicCheckIDs preserva el orden de inserción de los chequeos.
	// Su longitud decide a qué ciclo pertenece la próxima fecha agendada.
	PeriodicCheckIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PeriodicCheck es un registro de bienestar post-adopción. Append-only:
// una vez creado, este subsistema nunca lo edita ni lo borra.
type PeriodicCheck struct {
	ID     string
	FormID string

	CheckDate time.Time
	Health    CheckHealth
	Notes     string

	CheckedByID string
	ImageURL    string

	CreatedAt time.Time
}
