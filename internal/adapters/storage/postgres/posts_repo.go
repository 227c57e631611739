package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pet-adoption-backend/internal/domain/adoptionposts"
)

type AdoptionPostsRepo struct {
	db *sql.DB
}

func NewAdoptionPostsRepo(db *sql.DB) *AdoptionPostsRepo {
	return &AdoptionPostsRepo{db: db}
}

func (r *AdoptionPostsRepo) Create(ctx context.Context, p adoptionposts.AdoptionPost) error {
	imageURLs, err := json.Marshal(p.ImageURLs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO adoption_posts (
			id, pet_id, author_id,
			title, description,
			image_urls, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.PetID,
		p.AuthorID,
		p.Title,
		p.Description,
		imageURLs,
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *AdoptionPostsRepo) GetByID(ctx context.Context, id string) (adoptionposts.AdoptionPost, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptionposts.AdoptionPost{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, author_id,
			title, description,
			image_urls, status,
			created_at, updated_at
		FROM adoption_posts
		WHERE id = $1
	`, id)

	return scanPost(row)
}

func (r *AdoptionPostsRepo) Update(ctx context.Context, p adoptionposts.AdoptionPost) error {
	imageURLs, err := json.Marshal(p.ImageURLs)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_posts SET
			title = $2,
			description = $3,
			image_urls = $4,
			status = $5,
			updated_at = $6
		WHERE id = $1
	`,
		p.ID,
		p.Title,
		p.Description,
		imageURLs,
		string(p.Status),
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

func (r *AdoptionPostsRepo) List(ctx context.Context) ([]adoptionposts.AdoptionPost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, author_id,
			title, description,
			image_urls, status,
			created_at, updated_at
		FROM adoption_posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptionposts.AdoptionPost, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPost(row rowScanner) (adoptionposts.AdoptionPost, error) {
	var p adoptionposts.AdoptionPost
	var imageURLs []byte
	var status string

	if err := row.Scan(
		&p.ID,
		&p.PetID,
		&p.AuthorID,
		&p.Title,
		&p.Description,
		&imageURLs,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return adoptionposts.AdoptionPost{}, ErrNotFound
		}
		return adoptionposts.AdoptionPost{}, err
	}

	if err := json.Unmarshal(imageURLs, &p.ImageURLs); err != nil {
		return adoptionposts.AdoptionPost{}, err
	}
	p.Status = adoptionposts.Status(status)

	return p, nil
}
