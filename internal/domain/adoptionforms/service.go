package adoptionforms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/adoptionposts"
	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/domain/users"
	"pet-adoption-backend/internal/ports/blobstore"
	"pet-adoption-backend/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidUser   = errors.New("invalid user id")
	ErrInvalidPet    = errors.New("invalid pet id")
	ErrInvalidPost   = errors.New("invalid adoption post id")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrInvalidHealth = errors.New("invalid check status")
	ErrNotFound      = errors.New("adoption form not found")
)

// Service es el motor del workflow de adopción: transiciones de estado,
// efectos sobre los flags de la mascota y agenda de chequeos periódicos.
type Service struct {
	repo      Repository
	checks    CheckRepository
	petsRepo  pets.Repository
	postsRepo adoptionposts.Repository
	usersRepo users.Repository
	blobs     blobstore.Store
	publisher notify.Publisher
	now       func() time.Time
}

func NewService(
	repo Repository,
	checks CheckRepository,
	petsRepo pets.Repository,
	postsRepo adoptionposts.Repository,
	usersRepo users.Repository,
	blobs blobstore.Store,
	publisher notify.Publisher,
) *Service {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		checks:    checks,
		petsRepo:  petsRepo,
		postsRepo: postsRepo,
		usersRepo: usersRepo,
		blobs:     blobs,
		publisher: publisher,
		now:       time.Now,
	}
}

type CreateInput struct {
	AdoptionPostID string
	PetID          string
	SenderID       string
	Adopter        Adopter
	Reason         string
}

// Create valida las tres referencias antes de escribir nada; si alguna no
// resuelve, falla identificando cuál y no persiste el formulario.
// Luego registra el formulario (Pending, sin chequeos) y lo anota en las
// listas de la mascota. La re-postulación del mismo usuario está permitida.
func (s *Service) Create(ctx context.Context, in CreateInput) (AdoptionForm, error) {
	senderID := strings.TrimSpace(in.SenderID)
	petID := strings.TrimSpace(in.PetID)
	postID := strings.TrimSpace(in.AdoptionPostID)

	if senderID == "" {
		return AdoptionForm{}, ErrInvalidUser
	}
	if petID == "" {
		return AdoptionForm{}, ErrInvalidPet
	}
	if postID == "" {
		return AdoptionForm{}, ErrInvalidPost
	}

	sender, err := s.usersRepo.GetByID(ctx, senderID)
	if err != nil {
		return AdoptionForm{}, ErrInvalidUser
	}
	pet, err := s.petsRepo.GetByID(ctx, petID)
	if err != nil {
		return AdoptionForm{}, ErrInvalidPet
	}
	if _, err := s.postsRepo.GetByID(ctx, postID); err != nil {
		return AdoptionForm{}, ErrInvalidPost
	}

	now := s.now()
	f := AdoptionForm{
		ID:               uuid.NewString(),
		AdoptionPostID:   postID,
		PetID:            petID,
		SenderID:         sender.ID,
		Adopter:          in.Adopter,
		Reason:           strings.TrimSpace(in.Reason),
		Status:           StatusPending,
		PeriodicCheckIDs: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return AdoptionForm{}, err
	}

	// Segunda escritura (sin transacción): si falla acá, queda el form sin
	// anotar en la mascota. Ventana documentada; no se compensa.
	pet.FormRequestIDs = append(pet.FormRequestIDs, f.ID)
	pet.AdopterUserIDs = append(pet.AdopterUserIDs, sender.ID)
	pet.UpdatedAt = now
	if err := s.petsRepo.Update(ctx, pet); err != nil {
		return AdoptionForm{}, err
	}

	return f, nil
}

// UpdateStatus aplica la máquina de estados:
//
//	Rejected => pet.isAdopted=false, pet.isAddPost=false
//	Approved => pet.isAdopted=true
//	Pending  => sin efecto sobre la mascota
//
// La existencia del formulario se valida ANTES de tocar la mascota, para
// no mutar flags por un update que va a fallar.
func (s *Service) UpdateStatus(ctx context.Context, formID string, status Status) (PopulatedForm, error) {
	if !ValidStatus(status) {
		return PopulatedForm{}, ErrInvalidStatus
	}

	formID = strings.TrimSpace(formID)
	if formID == "" {
		return PopulatedForm{}, ErrNotFound
	}

	f, err := s.repo.GetByID(ctx, formID)
	if err != nil {
		return PopulatedForm{}, ErrNotFound
	}

	f.Status = status
	f.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, f); err != nil {
		return PopulatedForm{}, err
	}

	// Efecto sobre la mascota (segunda escritura, sin transacción).
	// Referencia colgante => se omite el efecto, igual que el original.
	if status != StatusPending {
		if pet, err := s.petsRepo.GetByID(ctx, f.PetID); err == nil {
			switch status {
			case StatusRejected:
				pet.IsAdopted = false
				pet.IsAddPost = false
			case StatusApproved:
				pet.IsAdopted = true
			}
			pet.UpdatedAt = s.now()
			if err := s.petsRepo.Update(ctx, pet); err != nil {
				return PopulatedForm{}, err
			}
		}
	}

	// Best effort: la notificación nunca falla el update.
	_ = s.publisher.Publish(ctx, f.SenderID, notify.Event{
		Type: notify.EventFormStatusUpdate,
		Data: map[string]any{"form_id": f.ID, "status": string(status)},
	})

	return s.populateForm(ctx, f), nil
}

type SubmitCheckInput struct {
	FormID      string
	CheckDate   time.Time
	Health      CheckHealth
	Notes       string
	CheckedByID string
	Image       []byte // opcional
}

// SubmitCheck registra un chequeo de bienestar y reagenda el seguimiento.
//
// La política se decide por la cantidad de chequeos YA registrados en el
// formulario, evaluada antes de anexar el nuevo:
//
//	0 (y form Approved) => approved_date=now si no estaba; próxima = now+1 mes
//	1, 2                => próxima = now+1 mes
//	3                   => se limpia la próxima fecha (seguimiento completo)
//	>=4                 => sin cambios de agenda
//
// La foto (si viene) se sube primero; si la subida falla, aborta todo y no
// se crea ningún registro.
func (s *Service) SubmitCheck(ctx context.Context, in SubmitCheckInput) (PopulatedCheck, error) {
	if !ValidCheckHealth(in.Health) {
		return PopulatedCheck{}, ErrInvalidHealth
	}
	if strings.TrimSpace(in.CheckedByID) == "" {
		return PopulatedCheck{}, ErrInvalidUser
	}

	f, err := s.repo.GetByID(ctx, strings.TrimSpace(in.FormID))
	if err != nil {
		return PopulatedCheck{}, ErrNotFound
	}

	imageURL := ""
	if len(in.Image) > 0 {
		u, err := s.blobs.Upload(ctx, in.Image)
		if err != nil {
			return PopulatedCheck{}, fmt.Errorf("%w: %v", blobstore.ErrUpload, err)
		}
		imageURL = u
	}

	now := s.now()
	checkDate := in.CheckDate
	if checkDate.IsZero() {
		checkDate = now
	}

	c := PeriodicCheck{
		ID:          uuid.NewString(),
		FormID:      f.ID,
		CheckDate:   checkDate,
		Health:      in.Health,
		Notes:       strings.TrimSpace(in.Notes),
		CheckedByID: strings.TrimSpace(in.CheckedByID),
		ImageURL:    imageURL,
		CreatedAt:   now,
	}

	if err := s.checks.Create(ctx, c); err != nil {
		return PopulatedCheck{}, err
	}

	// Agenda según la cantidad de chequeos previos.
	switch n := len(f.PeriodicCheckIDs); {
	case n == 0:
		if f.Status == StatusApproved {
			if f.ApprovedDate == nil {
				f.ApprovedDate = &now
			}
			next := now.AddDate(0, 1, 0)
			f.NextCheckDate = &next
		}
	case n == 1 || n == 2:
		next := now.AddDate(0, 1, 0)
		f.NextCheckDate = &next
	case n == 3:
		f.NextCheckDate = nil
	default:
		// n >= maxScheduledChecks: la política no define más ciclos.
	}

	f.PeriodicCheckIDs = append(f.PeriodicCheckIDs, c.ID)
	f.UpdatedAt = now
	if err := s.repo.Update(ctx, f); err != nil {
		// Chequeo persistido, form no: ventana de escritura parcial
		// conocida (ver DESIGN). Se surface el error sin compensar.
		return PopulatedCheck{}, err
	}

	return s.populateCheck(ctx, c), nil
}

// List devuelve formularios paginados y populados. Las entradas cuya
// population falla se descartan en vez de fallar el request completo.
func (s *Service) List(ctx context.Context, filter ListFilter, page PageRequest) (PopulatedPage, error) {
	raw, err := s.repo.List(ctx, filter, page.Normalize())
	if err != nil {
		return PopulatedPage{}, err
	}
	return s.populatePage(ctx, raw), nil
}

// ListBySender fija el filtro por remitente y delega en List.
func (s *Service) ListBySender(ctx context.Context, senderID string, filter ListFilter, page PageRequest) (PopulatedPage, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return PopulatedPage{}, ErrInvalidUser
	}
	filter.SenderID = senderID
	return s.List(ctx, filter, page)
}

func (s *Service) GetByID(ctx context.Context, id string) (AdoptionForm, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AdoptionForm{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}
