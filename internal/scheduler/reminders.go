package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"pet-adoption-backend/internal/domain/adoptionforms"
	"pet-adoption-backend/internal/platform/logger"
	"pet-adoption-backend/internal/ports/notify"
)

// DefaultSchedule corre el barrido una vez por hora.
const DefaultSchedule = "@hourly"

// dueLister es la porción del repositorio de formularios que necesita
// el scheduler.
type dueLister interface {
	ListDue(ctx context.Context, before time.Time) ([]adoptionforms.AdoptionForm, error)
}

// CheckReminder barre los formularios con chequeo vencido y notifica al
// adoptante para que envíe el reporte de bienestar.
type CheckReminder struct {
	forms     dueLister
	publisher notify.Publisher
	log       logger.Logger
	cron      *cron.Cron

	now func() time.Time
}

func NewCheckReminder(forms dueLister, publisher notify.Publisher, log logger.Logger) *CheckReminder {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CheckReminder{
		forms:     forms,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Start agenda el barrido con el spec de cron dado (vacío => DefaultSchedule).
func (r *CheckReminder) Start(spec string) error {
	if spec == "" {
		spec = DefaultSchedule
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		r.Run(ctx)
	}); err != nil {
		return err
	}

	c.Start()
	r.cron = c
	r.log.Info("check reminder started", map[string]any{"schedule": spec})
	return nil
}

func (r *CheckReminder) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// Run ejecuta un barrido. Cada formulario vencido produce una
// notificación "check request" al adoptante; los fallos de publicación
// se loguean y no frenan el resto del barrido.
func (r *CheckReminder) Run(ctx context.Context) {
	now := r.now()

	due, err := r.forms.ListDue(ctx, now)
	if err != nil {
		r.log.Error("check reminder sweep failed", map[string]any{"error": err.Error()})
		return
	}
	if len(due) == 0 {
		return
	}

	notified := 0
	for _, f := range due {
		ev := notify.Event{
			Type: notify.EventCheckRequest,
			Data: map[string]any{
				"form_id":         f.ID,
				"pet_id":          f.PetID,
				"next_check_date": f.NextCheckDate,
			},
		}
		if err := r.publisher.Publish(ctx, f.SenderID, ev); err != nil {
			r.log.Warn("check reminder publish failed", map[string]any{
				"form_id": f.ID,
				"error":   err.Error(),
			})
			continue
		}
		notified++
	}

	r.log.Info("check reminder sweep done", map[string]any{
		"due":      len(due),
		"notified": notified,
	})
}
