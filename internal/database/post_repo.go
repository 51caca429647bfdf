package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shubh-37/social-content-engine/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

const postColumns = `id, platform, content, status, date, COALESCE(time, ''), COALESCE(engagement, 0)`

type PostRepository struct {
	db *DB
}

func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	post := &models.Post{}
	err := row.Scan(
		&post.ID,
		&post.Platform,
		&post.Content,
		&post.Status,
		&post.Date,
		&post.Time,
		&post.Engagement,
	)
	return post, err
}

func nullableTime(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// Create inserts a new post into the database
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	if post.Status == "" {
		post.Status = models.StatusDraft
	}

	query := `
		INSERT INTO posts (id, platform, content, status, date, time, engagement)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		post.ID,
		post.Platform,
		post.Content,
		post.Status,
		post.Date,
		nullableTime(post.Time),
		post.Engagement,
	)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by its ID
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// GetAll retrieves every post, newest date first
func (r *PostRepository) GetAll(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY date DESC`
	return r.queryPosts(ctx, query)
}

// GetByStatus retrieves posts by status
func (r *PostRepository) GetByStatus(ctx context.Context, status string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 ORDER BY date ASC, time ASC`
	return r.queryPosts(ctx, query, status)
}

// GetEngaged retrieves posts that have recorded any engagement
func (r *PostRepository) GetEngaged(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE engagement > 0`
	return r.queryPosts(ctx, query)
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}

// Update updates a post
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET platform = $2, content = $3, status = $4, date = $5, time = $6, engagement = $7
		WHERE id = $1
	`

	result, err := r.db.Pool.Exec(ctx, query,
		post.ID,
		post.Platform,
		post.Content,
		post.Status,
		post.Date,
		nullableTime(post.Time),
		post.Engagement,
	)

	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

// UpdateStatus updates only the status of a post
func (r *PostRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE posts SET status = $2 WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update post status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

// UpdateEngagement stores the latest engagement count of a post
func (r *PostRepository) UpdateEngagement(ctx context.Context, id string, engagement int) error {
	query := `UPDATE posts SET engagement = $2 WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id, engagement)
	if err != nil {
		return fmt.Errorf("failed to update post engagement: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Delete deletes a post by ID
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}
