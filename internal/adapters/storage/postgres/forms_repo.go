package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/adoptionforms"
)

type AdoptionFormsRepo struct {
	db *sql.DB
}

func NewAdoptionFormsRepo(db *sql.DB) *AdoptionFormsRepo {
	return &AdoptionFormsRepo{db: db}
}

const formColumns = `
	id, adoption_post_id, pet_id, sender_id,
	adopter_name, adopter_email, adopter_phone,
	adopter_province, adopter_district, adopter_ward, adopter_detail,
	reason, status,
	approved_date, next_check_date,
	created_at, updated_at
`

func (r *AdoptionFormsRepo) Create(ctx context.Context, f adoptionforms.AdoptionForm) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_forms (`+formColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		f.ID,
		f.AdoptionPostID,
		f.PetID,
		f.SenderID,
		f.Adopter.Name,
		f.Adopter.Email,
		f.Adopter.Phone,
		f.Adopter.Address.Province,
		f.Adopter.Address.District,
		f.Adopter.Address.Ward,
		f.Adopter.Address.Detail,
		f.Reason,
		string(f.Status),
		f.ApprovedDate,
		f.NextCheckDate,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *AdoptionFormsRepo) GetByID(ctx context.Context, id string) (adoptionforms.AdoptionForm, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptionforms.AdoptionForm{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+formColumns+`
		FROM adoption_forms
		WHERE id = $1
	`, id)

	f, err := scanForm(row)
	if err != nil {
		return adoptionforms.AdoptionForm{}, err
	}

	if err := r.attachCheckIDs(ctx, &f); err != nil {
		return adoptionforms.AdoptionForm{}, err
	}
	return f, nil
}

// Update persiste el formulario. PeriodicCheckIDs no se escribe: el orden
// de los chequeos se deriva de la tabla periodic_checks (insert order).
func (r *AdoptionFormsRepo) Update(ctx context.Context, f adoptionforms.AdoptionForm) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_forms SET
			adopter_name = $2,
			adopter_email = $3,
			adopter_phone = $4,
			adopter_province = $5,
			adopter_district = $6,
			adopter_ward = $7,
			adopter_detail = $8,
			reason = $9,
			status = $10,
			approved_date = $11,
			next_check_date = $12,
			updated_at = $13
		WHERE id = $1
	`,
		f.ID,
		f.Adopter.Name,
		f.Adopter.Email,
		f.Adopter.Phone,
		f.Adopter.Address.Province,
		f.Adopter.Address.District,
		f.Adopter.Address.Ward,
		f.Adopter.Address.Detail,
		f.Reason,
		string(f.Status),
		f.ApprovedDate,
		f.NextCheckDate,
		f.UpdatedAt,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AdoptionFormsRepo) List(ctx context.Context, filter adoptionforms.ListFilter, page adoptionforms.PageRequest) (adoptionforms.FormPage, error) {
	page = page.Normalize()

	where := strings.Builder{}
	where.WriteString(" WHERE 1=1")

	args := []any{}
	argN := 1

	if filter.SenderID != "" {
		where.WriteString(fmt.Sprintf(" AND sender_id = $%d", argN))
		args = append(args, filter.SenderID)
		argN++
	}
	if filter.PetID != "" {
		where.WriteString(fmt.Sprintf(" AND pet_id = $%d", argN))
		args = append(args, filter.PetID)
		argN++
	}
	if filter.PostID != "" {
		where.WriteString(fmt.Sprintf(" AND adoption_post_id = $%d", argN))
		args = append(args, filter.PostID)
		argN++
	}
	if filter.Status != "" {
		where.WriteString(fmt.Sprintf(" AND status = $%d", argN))
		args = append(args, string(filter.Status))
		argN++
	}

	// q: búsqueda solo en reason + nombre/email del adoptante (allow-list).
	if q := strings.TrimSpace(filter.Query); q != "" {
		where.WriteString(fmt.Sprintf(
			" AND (reason ILIKE $%d OR adopter_name ILIKE $%d OR adopter_email ILIKE $%d)",
			argN, argN, argN,
		))
		args = append(args, "%"+q+"%")
		argN++
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM adoption_forms"+where.String(), args...,
	).Scan(&total); err != nil {
		return adoptionforms.FormPage{}, err
	}

	orderCol := "created_at"
	if page.SortBy == adoptionforms.SortUpdated {
		orderCol = "updated_at"
	}

	query := "SELECT " + formColumns + " FROM adoption_forms" + where.String() +
		fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", orderCol, argN, argN+1)
	args = append(args, page.Limit, (page.Page-1)*page.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return adoptionforms.FormPage{}, err
	}
	defer rows.Close()

	results := make([]adoptionforms.AdoptionForm, 0, page.Limit)
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return adoptionforms.FormPage{}, err
		}
		results = append(results, f)
	}
	if err := rows.Err(); err != nil {
		return adoptionforms.FormPage{}, err
	}

	for i := range results {
		if err := r.attachCheckIDs(ctx, &results[i]); err != nil {
			return adoptionforms.FormPage{}, err
		}
	}

	return adoptionforms.FormPage{
		Results:      results,
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   (total + page.Limit - 1) / page.Limit,
		TotalResults: total,
	}, nil
}

func (r *AdoptionFormsRepo) ListDue(ctx context.Context, before time.Time) ([]adoptionforms.AdoptionForm, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+formColumns+`
		FROM adoption_forms
		WHERE next_check_date IS NOT NULL AND next_check_date <= $1
		ORDER BY next_check_date ASC
	`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptionforms.AdoptionForm, 0)
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *AdoptionFormsRepo) attachCheckIDs(ctx context.Context, f *adoptionforms.AdoptionForm) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id
		FROM periodic_checks
		WHERE form_id = $1
		ORDER BY created_at ASC, id ASC
	`, f.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	f.PeriodicCheckIDs = ids
	return rows.Err()
}

func scanForm(row rowScanner) (adoptionforms.AdoptionForm, error) {
	var f adoptionforms.AdoptionForm
	var status string
	var approved, next sql.NullTime

	if err := row.Scan(
		&f.ID,
		&f.AdoptionPostID,
		&f.PetID,
		&f.SenderID,
		&f.Adopter.Name,
		&f.Adopter.Email,
		&f.Adopter.Phone,
		&f.Adopter.Address.Province,
		&f.Adopter.Address.District,
		&f.Adopter.Address.Ward,
		&f.Adopter.Address.Detail,
		&f.Reason,
		&status,
		&approved,
		&next,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return adoptionforms.AdoptionForm{}, ErrNotFound
		}
		return adoptionforms.AdoptionForm{}, err
	}

	f.Status = adoptionforms.Status(status)
	if approved.Valid {
		t := approved.Time
		f.ApprovedDate = &t
	}
	if next.Valid {
		t := next.Time
		f.NextCheckDate = &t
	}

	return f, nil
}
