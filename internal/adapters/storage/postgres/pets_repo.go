package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pet-adoption-backend/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

// Los campos lista (image_urls, form_request_ids, adopter_user_ids) se
// guardan como JSONB para no depender de tipos array del driver.
func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	imageURLs, err := json.Marshal(p.ImageURLs)
	if err != nil {
		return err
	}
	formIDs, err := json.Marshal(p.FormRequestIDs)
	if err != nil {
		return err
	}
	adopterIDs, err := json.Marshal(p.AdopterUserIDs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, breed, age, description,
			image_urls,
			is_adopted, is_add_post,
			form_request_ids, adopter_user_ids,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.Name,
		p.Breed,
		p.Age,
		p.Description,
		imageURLs,
		p.IsAdopted,
		p.IsAddPost,
		formIDs,
		adopterIDs,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, breed, age, description,
			image_urls,
			is_adopted, is_add_post,
			form_request_ids, adopter_user_ids,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	return scanPet(row)
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	imageURLs, err := json.Marshal(p.ImageURLs)
	if err != nil {
		return err
	}
	formIDs, err := json.Marshal(p.FormRequestIDs)
	if err != nil {
		return err
	}
	adopterIDs, err := json.Marshal(p.AdopterUserIDs)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets SET
			name = $2,
			breed = $3,
			age = $4,
			description = $5,
			image_urls = $6,
			is_adopted = $7,
			is_add_post = $8,
			form_request_ids = $9,
			adopter_user_ids = $10,
			updated_at = $11
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Breed,
		p.Age,
		p.Description,
		imageURLs,
		p.IsAdopted,
		p.IsAddPost,
		formIDs,
		adopterIDs,
		p.UpdatedAt,
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

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, breed, age, description,
			image_urls,
			is_adopted, is_add_post,
			form_request_ids, adopter_user_ids,
			created_at, updated_at
		FROM pets
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var imageURLs, formIDs, adopterIDs []byte

	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Breed,
		&p.Age,
		&p.Description,
		&imageURLs,
		&p.IsAdopted,
		&p.IsAddPost,
		&formIDs,
		&adopterIDs,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}

	if err := json.Unmarshal(imageURLs, &p.ImageURLs); err != nil {
		return pets.Pet{}, err
	}
	if err := json.Unmarshal(formIDs, &p.FormRequestIDs); err != nil {
		return pets.Pet{}, err
	}
	if err := json.Unmarshal(adopterIDs, &p.AdopterUserIDs); err != nil {
		return pets.Pet{}, err
	}

	return p, nil
}
