package repository

import (
	"context"
	"time"

	"craftlink/internal/database"

	"github.com/google/uuid"
)

type Photo struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Caption       *string
	ImageFilename string
	UploadedAt    time.Time
}

type PhotoRepository interface {
	Create(ctx context.Context, p Photo) (Photo, error)
	GetByID(ctx context.Context, id uuid.UUID) (Photo, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Photo, error)
	Update(ctx context.Context, id uuid.UUID, caption *string, filename string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

const photoColumns = `id, user_id, caption, image_filename, uploaded_at`

type PostgresPhotoRepository struct {
	db database.DB
}

func NewPostgresPhotoRepository(db database.DB) *PostgresPhotoRepository {
	return &PostgresPhotoRepository{db: db}
}

func (r *PostgresPhotoRepository) Create(ctx context.Context, p Photo) (Photo, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO photos (id, user_id, caption, image_filename)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+photoColumns,
		p.ID, p.UserID, p.Caption, p.ImageFilename,
	)
	return scanPhoto(row)
}

func (r *PostgresPhotoRepository) GetByID(ctx context.Context, id uuid.UUID) (Photo, error) {
	row := r.db.QueryRow(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = $1`, id)
	return scanPhoto(row)
}

func (r *PostgresPhotoRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Photo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE user_id = $1 ORDER BY uploaded_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPhotoRepository) Update(ctx context.Context, id uuid.UUID, caption *string, filename string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE photos SET caption = $1, image_filename = $2 WHERE id = $3`,
		caption, filename, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPhoto(row scanner) (Photo, error) {
	var p Photo
	err := row.Scan(&p.ID, &p.UserID, &p.Caption, &p.ImageFilename, &p.UploadedAt)
	if err != nil {
		if isNoRows(err) {
			return Photo{}, ErrNotFound
		}
		return Photo{}, err
	}
	return p, nil
}
