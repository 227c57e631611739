package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-backend/internal/domain/adoptionforms"
)

// PeriodicChecksRepo es append-only: no hay UPDATE ni DELETE acá.
type PeriodicChecksRepo struct {
	db *sql.DB
}

func NewPeriodicChecksRepo(db *sql.DB) *PeriodicChecksRepo {
	return &PeriodicChecksRepo{db: db}
}

func (r *PeriodicChecksRepo) Create(ctx context.Context, c adoptionforms.PeriodicCheck) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO periodic_checks (
			id, form_id,
			check_date, health, notes,
			checked_by, image_url,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		c.ID,
		c.FormID,
		c.CheckDate,
		string(c.Health),
		c.Notes,
		c.CheckedByID,
		c.ImageURL,
		c.CreatedAt,
	)
	return err
}

func (r *PeriodicChecksRepo) GetByID(ctx context.Context, id string) (adoptionforms.PeriodicCheck, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptionforms.PeriodicCheck{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, form_id,
			check_date, health, notes,
			checked_by, image_url,
			created_at
		FROM periodic_checks
		WHERE id = $1
	`, id)

	return scanCheck(row)
}

func (r *PeriodicChecksRepo) ListByForm(ctx context.Context, formID string) ([]adoptionforms.PeriodicCheck, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, form_id,
			check_date, health, notes,
			checked_by, image_url,
			created_at
		FROM periodic_checks
		WHERE form_id = $1
		ORDER BY created_at ASC, id ASC
	`, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptionforms.PeriodicCheck, 0)
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func scanCheck(row rowScanner) (adoptionforms.PeriodicCheck, error) {
	var c adoptionforms.PeriodicCheck
	var health string

	if err := row.Scan(
		&c.ID,
		&c.FormID,
		&c.CheckDate,
		&health,
		&c.Notes,
		&c.CheckedByID,
		&c.ImageURL,
		&c.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return adoptionforms.PeriodicCheck{}, ErrNotFound
		}
		return adoptionforms.PeriodicCheck{}, err
	}

	c.Health = adoptionforms.CheckHealth(health)
	return c, nil
}
