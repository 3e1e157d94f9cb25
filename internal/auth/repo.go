package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// ByEmail returns ErrInvalidCredentials for unknown emails so callers cannot
// tell a missing account from a wrong password.
func (r *Repo) ByEmail(ctx context.Context, email string) (Admin, error) {
	var a Admin
	err := r.DB.QueryRow(ctx, `
		SELECT id::text, email, password_hash, created_at FROM admins WHERE email=$1`,
		NormalizeEmail(email)).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Admin{}, ErrInvalidCredentials
	}
	return a, err
}

func (r *Repo) Create(ctx context.Context, email, password string) (Admin, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return Admin{}, err
	}
	a := Admin{ID: uuid.NewString(), Email: NormalizeEmail(email), PasswordHash: hash, CreatedAt: time.Now().UTC()}
	_, err = r.DB.Exec(ctx, `INSERT INTO admins(id, email, password_hash, created_at) VALUES ($1,$2,$3,$4)`,
		a.ID, a.Email, a.PasswordHash, a.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return Admin{}, ErrAdminExists
	}
	if err != nil {
		return Admin{}, err
	}
	return a, nil
}
