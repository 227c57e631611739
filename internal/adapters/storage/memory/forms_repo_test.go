package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pet-adoption-backend/internal/domain/adoptionforms"
)

func seedForms(t *testing.T, repo adoptionforms.Repository, n int) []adoptionforms.AdoptionForm {
	t.Helper()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]adoptionforms.AdoptionForm, 0, n)
	for i := 0; i < n; i++ {
		f := adoptionforms.AdoptionForm{
			ID:             fmt.Sprintf("form-%02d", i),
			AdoptionPostID: "post-1",
			PetID:          "pet-1",
			SenderID:       fmt.Sprintf("user-%d", i%2),
			Adopter: adoptionforms.Adopter{
				Name:  fmt.Sprintf("Adopter %d", i),
				Email: fmt.Sprintf("adopter%d@test.com", i),
			},
			Reason:    fmt.Sprintf("motivo %d", i),
			Status:    adoptionforms.StatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Create(context.Background(), f); err != nil {
			t.Fatalf("seed form %d: %v", i, err)
		}
		out = append(out, f)
	}
	return out
}

func TestFormRepo_ListPaginationDefaults(t *testing.T) {
	repo := NewAdoptionFormRepo()
	seedForms(t, repo, 12)

	page, err := repo.List(context.Background(), adoptionforms.ListFilter{}, adoptionforms.PageRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if page.Page != 1 || page.Limit != 5 {
		t.Fatalf("defaults not applied: page=%d limit=%d", page.Page, page.Limit)
	}
	if page.TotalResults != 12 {
		t.Fatalf("total results = %d, want 12", page.TotalResults)
	}
	if page.TotalPages != 3 {
		t.Fatalf("total pages = %d, want ceil(12/5)=3", page.TotalPages)
	}
	if len(page.Results) != 5 {
		t.Fatalf("page size = %d, want 5", len(page.Results))
	}

	// Default: createdAt descendente => el más nuevo primero.
	if page.Results[0].ID != "form-11" {
		t.Fatalf("expected newest first, got %s", page.Results[0].ID)
	}
}

func TestFormRepo_ListLastPageAndBeyond(t *testing.T) {
	repo := NewAdoptionFormRepo()
	seedForms(t, repo, 12)
	ctx := context.Background()

	page, err := repo.List(ctx, adoptionforms.ListFilter{}, adoptionforms.PageRequest{Page: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("last page size = %d, want 2", len(page.Results))
	}

	page, err = repo.List(ctx, adoptionforms.ListFilter{}, adoptionforms.PageRequest{Page: 9})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Results) != 0 {
		t.Fatalf("page past the end should be empty, got %d", len(page.Results))
	}
	if page.TotalResults != 12 {
		t.Fatalf("totals should not change: %d", page.TotalResults)
	}
}

func TestFormRepo_ListFilters(t *testing.T) {
	repo := NewAdoptionFormRepo()
	seedForms(t, repo, 6)
	ctx := context.Background()

	page, err := repo.List(ctx, adoptionforms.ListFilter{SenderID: "user-1"}, adoptionforms.PageRequest{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalResults != 3 {
		t.Fatalf("sender filter: got %d, want 3", page.TotalResults)
	}
	for _, f := range page.Results {
		if f.SenderID != "user-1" {
			t.Fatalf("filter leaked sender %s", f.SenderID)
		}
	}
}

func TestFormRepo_SearchAllowList(t *testing.T) {
	repo := NewAdoptionFormRepo()
	ctx := context.Background()

	f := adoptionforms.AdoptionForm{
		ID:       "form-a",
		SenderID: "user-1",
		Adopter:  adoptionforms.Adopter{Name: "Carla", Email: "carla@test.com"},
		Reason:   "tengo patio grande",
		Status:   adoptionforms.StatusPending,
	}
	if err := repo.Create(ctx, f); err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		q    string
		want int
	}{
		{"patio", 1},         // reason
		{"carla", 1},         // adopter name (case-insensitive)
		{"CARLA@TEST", 1},    // adopter email
		{"user-1", 0},        // sender id NO es buscable
		{"inexistente", 0},
	}
	for _, tc := range cases {
		page, err := repo.List(ctx, adoptionforms.ListFilter{Query: tc.q}, adoptionforms.PageRequest{})
		if err != nil {
			t.Fatalf("list q=%q: %v", tc.q, err)
		}
		if page.TotalResults != tc.want {
			t.Fatalf("q=%q: got %d, want %d", tc.q, page.TotalResults, tc.want)
		}
	}
}

func TestFormRepo_SortByUpdatedAt(t *testing.T) {
	repo := NewAdoptionFormRepo()
	forms := seedForms(t, repo, 3)
	ctx := context.Background()

	// El más viejo pasa a ser el último tocado.
	oldest := forms[0]
	oldest.UpdatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.Update(ctx, oldest); err != nil {
		t.Fatalf("update: %v", err)
	}

	page, err := repo.List(ctx, adoptionforms.ListFilter{}, adoptionforms.PageRequest{SortBy: adoptionforms.SortUpdated})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Results[0].ID != oldest.ID {
		t.Fatalf("expected %s first by updatedAt, got %s", oldest.ID, page.Results[0].ID)
	}
}

func TestFormRepo_ListDue(t *testing.T) {
	repo := NewAdoptionFormRepo()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mk := func(id string, next *time.Time) {
		f := adoptionforms.AdoptionForm{ID: id, Status: adoptionforms.StatusApproved, NextCheckDate: next}
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	past := now.AddDate(0, -1, 0)
	exact := now
	future := now.AddDate(0, 1, 0)
	mk("due-past", &past)
	mk("due-now", &exact)
	mk("not-due", &future)
	mk("no-schedule", nil)

	due, err := repo.ListDue(ctx, now)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected 2 due forms, got %d", len(due))
	}
	// Ascendente por vencimiento.
	if due[0].ID != "due-past" || due[1].ID != "due-now" {
		t.Fatalf("wrong due order: %s, %s", due[0].ID, due[1].ID)
	}
}

func TestFormRepo_CloneProtectsInternalState(t *testing.T) {
	repo := NewAdoptionFormRepo()
	ctx := context.Background()

	f := adoptionforms.AdoptionForm{ID: "form-a", PeriodicCheckIDs: []string{"c1"}}
	if err := repo.Create(ctx, f); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, _ := repo.GetByID(ctx, "form-a")
	got.PeriodicCheckIDs[0] = "mutated"

	again, _ := repo.GetByID(ctx, "form-a")
	if again.PeriodicCheckIDs[0] != "c1" {
		t.Fatalf("repo state mutated through returned slice")
	}
}
