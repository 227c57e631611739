package redispub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"pet-adoption-backend/internal/ports/notify"
)

const channelPrefix = "notifications:"

// Publisher publica eventos de notificación en Redis pub/sub. El
// frontend (u otro servicio) se suscribe al canal del usuario.
// Implementa notify.Publisher.
type Publisher struct {
	client *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) (*Publisher, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, fmt.Errorf("redispub: addr requerido")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redispub: ping: %w", err)
	}

	return &Publisher{client: client}, nil
}

func (p *Publisher) Publish(ctx context.Context, userID string, ev notify.Event) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("redispub: user id vacío")
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("redispub: marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, channelPrefix+userID, payload).Err(); err != nil {
		return fmt.Errorf("redispub: publish: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.client.Close()
}

var _ notify.Publisher = (*Publisher)(nil)
