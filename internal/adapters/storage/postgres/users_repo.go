package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-backend/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, role, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		u.ID,
		u.Username,
		u.Email,
		string(u.Role),
		u.CreatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, role, created_at
		FROM users
		WHERE id = $1
	`, id)

	var u users.User
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &role, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}

	u.Role = users.Role(role)
	return u, nil
}
