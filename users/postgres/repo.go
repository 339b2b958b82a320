// Package postgres implements the identity repository on PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/bloghq/auth-service/users"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

var _ users.Repo = (*Repo)(nil)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, role, first_name, last_name, social_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	created := *user
	err := r.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, string(user.Role),
		user.FirstName, user.LastName, user.SocialLinks,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, users.ErrDuplicate
		}
		return nil, err
	}
	return &created, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `
		SELECT id, username, email, password_hash, role, first_name, last_name, social_links, created_at
		FROM users
		WHERE email = $1`

	user := &users.User{}
	var role string
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &role,
		&user.FirstName, &user.LastName, &user.SocialLinks, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, err
	}
	user.Role = users.Role(role)
	return user, nil
}

func (r *Repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
