package pets

import "time"

// Pet representa una mascota registrada para adopción.
//
// IsAdopted e IsAddPost son efectos colaterales del workflow de adopción
// (aprobar/rechazar un formulario). Ningún otro módulo los muta directo.
type Pet struct {
	ID string

	Name        string
	Breed       string
	Age         int
	Description string

	ImageURLs []string

	IsAdopted bool
	IsAddPost bool

	// FormRequestIDs: formularios de adopción pendientes sobre esta mascota.
	// AdopterUserIDs: usuarios interesados. Ambos son append simple; la
	// re-postulación del mismo usuario está permitida a propósito.
	FormRequestIDs []string
	AdopterUserIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
