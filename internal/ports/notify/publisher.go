package notify

import "context"

// EventType clasifica las notificaciones que emite el workflow.
type EventType string

const (
	EventFormStatusUpdate EventType = "form_status_update"
	EventCheckRequest     EventType = "check request"
	EventApprove          EventType = "approve"
)

// Event es el payload que recibe el usuario destinatario.
type Event struct {
	Type EventType      `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Publisher abstrae el transporte de notificaciones (antes un singleton
// de sockets a nivel proceso). El workflow solo conoce esta capacidad.
type Publisher interface {
	Publish(ctx context.Context, userID string, ev Event) error
}

// NopPublisher descarta todo. Útil en dev y tests.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, userID string, ev Event) error { return nil }
