package repository

import (
	"context"
	"time"

	"craftlink/internal/database"

	"github.com/google/uuid"
)

type JobPost struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Price       float64
	Deadline    time.Time
	CreatedAt   time.Time
}

type JobPostRepository interface {
	Create(ctx context.Context, jp JobPost) (JobPost, error)
	GetByID(ctx context.Context, id uuid.UUID) (JobPost, error)
	List(ctx context.Context) ([]JobPost, error)
	OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	UpdateFields(ctx context.Context, id uuid.UUID, set *UpdateSet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const jobPostColumns = `id, user_id, title, description, price, deadline, created_at`

type PostgresJobPostRepository struct {
	db database.DB
}

func NewPostgresJobPostRepository(db database.DB) *PostgresJobPostRepository {
	return &PostgresJobPostRepository{db: db}
}

func (r *PostgresJobPostRepository) Create(ctx context.Context, jp JobPost) (JobPost, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_posts (id, user_id, title, description, price, deadline)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+jobPostColumns,
		jp.ID, jp.UserID, jp.Title, jp.Description, jp.Price, jp.Deadline,
	)
	return scanJobPost(row)
}

func (r *PostgresJobPostRepository) GetByID(ctx context.Context, id uuid.UUID) (JobPost, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobPostColumns+` FROM job_posts WHERE id = $1`, id)
	return scanJobPost(row)
}

func (r *PostgresJobPostRepository) List(ctx context.Context) ([]JobPost, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobPostColumns+` FROM job_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobPost, 0)
	for rows.Next() {
		jp, err := scanJobPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, jp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobPostRepository) OwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM job_posts WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if isNoRows(err) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}
	return owner, nil
}

func (r *PostgresJobPostRepository) UpdateFields(ctx context.Context, id uuid.UUID, set *UpdateSet) error {
	if set.Empty() {
		return nil
	}

	clause, args := set.Clause(2)
	args = append([]any{id}, args...)

	affected, err := r.db.Exec(ctx, `UPDATE job_posts SET `+clause+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to remove the post's job_skills and
// bookings with it.
func (r *PostgresJobPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM job_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanJobPost(row scanner) (JobPost, error) {
	var jp JobPost
	err := row.Scan(&jp.ID, &jp.UserID, &jp.Title, &jp.Description, &jp.Price, &jp.Deadline, &jp.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return JobPost{}, ErrNotFound
		}
		return JobPost{}, err
	}
	return jp, nil
}
