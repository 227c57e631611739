package adoptionforms

import (
	"context"
	"strings"

	"pet-adoption-backend/internal/domain/adoptionposts"
	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/domain/users"
)

// placeholder para campos de staff que faltan, igual que el original.
const missingField = "N/A"

// StaffRef es la referencia resuelta al usuario de staff de un chequeo.
type StaffRef struct {
	ID       string
	Username string
	Email    string
}

// PopulatedCheck es un chequeo con su staff resuelto. CheckedBy queda nil
// si la referencia no resuelve (no se descarta el chequeo por eso).
type PopulatedCheck struct {
	Check     PeriodicCheck
	CheckedBy *StaffRef
}

// PopulatedForm expande las referencias del formulario. Las referencias
// que no resuelven quedan nil; el formulario en sí se conserva.
type PopulatedForm struct {
	Form   AdoptionForm
	Post   *adoptionposts.AdoptionPost
	Pet    *pets.Pet
	Sender *users.User
	Checks []PopulatedCheck
}

type PopulatedPage struct {
	Results      []PopulatedForm
	Page         int
	Limit        int
	TotalPages   int
	TotalResults int
}

func (s *Service) populateForm(ctx context.Context, f AdoptionForm) PopulatedForm {
	out := PopulatedForm{
		Form:   f,
		Checks: make([]PopulatedCheck, 0, len(f.PeriodicCheckIDs)),
	}

	if p, err := s.postsRepo.GetByID(ctx, f.AdoptionPostID); err == nil {
		out.Post = &p
	}
	if p, err := s.petsRepo.GetByID(ctx, f.PetID); err == nil {
		out.Pet = &p
	}
	if u, err := s.usersRepo.GetByID(ctx, f.SenderID); err == nil {
		out.Sender = &u
	}

	// El orden de PeriodicCheckIDs es el orden de los chequeos; un chequeo
	// cuya referencia no resuelve se omite de la lista populada.
	for _, id := range f.PeriodicCheckIDs {
		c, err := s.checks.GetByID(ctx, id)
		if err != nil {
			continue
		}
		out.Checks = append(out.Checks, s.populateCheck(ctx, c))
	}

	return out
}

func (s *Service) populateCheck(ctx context.Context, c PeriodicCheck) PopulatedCheck {
	out := PopulatedCheck{Check: c}

	u, err := s.usersRepo.GetByID(ctx, c.CheckedByID)
	if err != nil {
		return out
	}

	ref := StaffRef{
		ID:       u.ID,
		Username: strings.TrimSpace(u.Username),
		Email:    strings.TrimSpace(u.Email),
	}
	if ref.Username == "" {
		ref.Username = missingField
	}
	if ref.Email == "" {
		ref.Email = missingField
	}
	out.CheckedBy = &ref
	return out
}

// populatePage popula cada resultado. Si un formulario quedó malformado
// (population inconsistente), se descarta esa entrada en vez de fallar el
// request entero.
func (s *Service) populatePage(ctx context.Context, raw FormPage) PopulatedPage {
	out := PopulatedPage{
		Results:      make([]PopulatedForm, 0, len(raw.Results)),
		Page:         raw.Page,
		Limit:        raw.Limit,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
	}

	for _, f := range raw.Results {
		if strings.TrimSpace(f.ID) == "" {
			continue
		}
		out.Results = append(out.Results, s.populateForm(ctx, f))
	}

	return out
}
