package repository

import (
	"context"
	"time"

	"craftlink/internal/database"

	"github.com/google/uuid"
)

type Rating struct {
	ID           uuid.UUID
	RaterID      uuid.UUID
	TargetUserID uuid.UUID
	Value        int
	FeedbackText *string
	CreatedAt    time.Time
}

type RatingRepository interface {
	Create(ctx context.Context, rt Rating) (Rating, error)
	GetByID(ctx context.Context, id uuid.UUID) (Rating, error)
	ListForTarget(ctx context.Context, targetUserID uuid.UUID) ([]Rating, error)
	ListAll(ctx context.Context) ([]Rating, error)
	Average(ctx context.Context, targetUserID uuid.UUID) (avg *float64, count int64, err error)
	Update(ctx context.Context, id uuid.UUID, value int, feedback *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const ratingColumns = `id, user_id, target_user_id, rating_value, feedback_text, created_at`

type PostgresRatingRepository struct {
	db database.DB
}

func NewPostgresRatingRepository(db database.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

func (r *PostgresRatingRepository) Create(ctx context.Context, rt Rating) (Rating, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO ratings (id, user_id, target_user_id, rating_value, feedback_text)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+ratingColumns,
		rt.ID, rt.RaterID, rt.TargetUserID, rt.Value, rt.FeedbackText,
	)
	return scanRating(row)
}

func (r *PostgresRatingRepository) GetByID(ctx context.Context, id uuid.UUID) (Rating, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ratingColumns+` FROM ratings WHERE id = $1`, id)
	return scanRating(row)
}

func (r *PostgresRatingRepository) ListForTarget(ctx context.Context, targetUserID uuid.UUID) ([]Rating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ratingColumns+` FROM ratings WHERE target_user_id = $1 ORDER BY created_at DESC`,
		targetUserID,
	)
	if err != nil {
		return nil, err
	}
	return collectRatings(rows)
}

func (r *PostgresRatingRepository) ListAll(ctx context.Context) ([]Rating, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ratingColumns+` FROM ratings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectRatings(rows)
}

func (r *PostgresRatingRepository) Average(ctx context.Context, targetUserID uuid.UUID) (*float64, int64, error) {
	var avg *float64
	var count int64
	row := r.db.QueryRow(ctx,
		`SELECT AVG(rating_value), COUNT(*) FROM ratings WHERE target_user_id = $1`,
		targetUserID,
	)
	if err := row.Scan(&avg, &count); err != nil {
		return nil, 0, err
	}
	return avg, count, nil
}

func (r *PostgresRatingRepository) Update(ctx context.Context, id uuid.UUID, value int, feedback *string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE ratings SET rating_value = $1, feedback_text = $2 WHERE id = $3`,
		value, feedback, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func collectRatings(rows database.Rows) ([]Rating, error) {
	defer rows.Close()

	out := make([]Rating, 0)
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRating(row scanner) (Rating, error) {
	var rt Rating
	err := row.Scan(&rt.ID, &rt.RaterID, &rt.TargetUserID, &rt.Value, &rt.FeedbackText, &rt.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return Rating{}, ErrNotFound
		}
		return Rating{}, err
	}
	return rt, nil
}
