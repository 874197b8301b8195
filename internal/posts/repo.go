package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/divij2510/PurpleProse/internal/domain"
)

// ErrNotFound is returned when no post exists with the requested ID.
var ErrNotFound = errors.New("post not found")

const postSelect = `
SELECT p.id, p.title, p.content, p.tags, p.image_url, p.user_id, p.created_at, p.updated_at,
       u.id, u.name, u.avatar
FROM posts p
JOIN users u ON u.id = p.user_id`

// Repo persists posts in Postgres. Tags map to a text[] column and keep
// their order.
type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

func (r *Repo) Create(ctx context.Context, p domain.Post) (domain.Post, error) {
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO posts (title, content, tags, image_url, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		p.Title, p.Content, p.Tags, p.ImageURL, p.UserID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.Pool.Query(ctx, postSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (r *Repo) ListByAuthor(ctx context.Context, userID int64) ([]domain.Post, error) {
	rows, err := r.Pool.Query(ctx,
		postSelect+` WHERE p.user_id = $1 ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (r *Repo) Get(ctx context.Context, id int64) (domain.Post, error) {
	p, err := scanPost(r.Pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Post{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Update(ctx context.Context, p domain.Post) (domain.Post, error) {
	err := r.Pool.QueryRow(ctx,
		`UPDATE posts
		 SET title = $2, content = $3, tags = $4, image_url = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		p.ID, p.Title, p.Content, p.Tags, p.ImageURL,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Post{}, ErrNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (domain.Post, error) {
	var p domain.Post
	var a domain.Author
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Tags, &p.ImageURL, &p.UserID,
		&p.CreatedAt, &p.UpdatedAt, &a.ID, &a.Name, &a.Avatar)
	if err != nil {
		return domain.Post{}, err
	}
	p.Author = &a
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func scanPosts(rows pgx.Rows) ([]domain.Post, error) {
	out := make([]domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
