package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/divij2510/PurpleProse/internal/domain"
)

var (
	ErrEmailTaken = errors.New("user already exists")
	ErrNotFound   = errors.New("user not found")
)

const userColumns = `id, name, email, password_hash, google_id, bio, avatar, created_at, updated_at`

// Repo persists users in Postgres.
type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

func (r *Repo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, google_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		u.Name, u.Email, u.PasswordHash, u.GoogleID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.GoogleID, &u.Bio, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return u, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanOne(r.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *Repo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return r.scanOne(r.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// SetGoogleID links an external provider ID to an existing account.
func (r *Repo) SetGoogleID(ctx context.Context, id int64, googleID string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE users SET google_id = $2, updated_at = NOW() WHERE id = $1`, id, googleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) scanOne(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.GoogleID, &u.Bio, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
