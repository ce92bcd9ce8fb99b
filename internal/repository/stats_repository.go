package repository

import (
	"context"

	"craftlink/internal/database"
)

type Overview struct {
	Users    int64
	JobPosts int64
	Bookings int64
	Ratings  int64
}

type StatsRepository interface {
	Overview(ctx context.Context) (Overview, error)
}

type PostgresStatsRepository struct {
	db database.DB
}

func NewPostgresStatsRepository(db database.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) Overview(ctx context.Context) (Overview, error) {
	var o Overview
	row := r.db.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM users),
		   (SELECT COUNT(*) FROM job_posts),
		   (SELECT COUNT(*) FROM bookings),
		   (SELECT COUNT(*) FROM ratings)`,
	)
	if err := row.Scan(&o.Users, &o.JobPosts, &o.Bookings, &o.Ratings); err != nil {
		return Overview{}, err
	}
	return o, nil
}
