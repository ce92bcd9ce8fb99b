package repository

import (
	"context"
	"time"

	"craftlink/internal/database"

	"github.com/google/uuid"
)

// matchLimit caps every matching/search read.
const matchLimit = 200

// CoverageRow aggregates, for one contractor against one job post, how many
// of the job's skill requirements they satisfy. The mandatory-coverage filter
// itself lives in the matching service so it can be tested without a
// database.
type CoverageRow struct {
	UserID          uuid.UUID
	Username        string
	Name            string
	Surname         string
	RequiredMatched int
	TotalRequired   int
	TotalMatched    int
}

type ContractorRow struct {
	UserID   uuid.UUID
	Username string
	Name     string
	Surname  string
	Email    string
}

type MatchRepository interface {
	JobsForContractor(ctx context.Context, contractorID uuid.UUID) ([]JobPost, error)
	CoverageForJob(ctx context.Context, jobPostID uuid.UUID) ([]CoverageRow, error)
	SearchContractors(ctx context.Context, skillIDs []uuid.UUID, from, to time.Time) ([]ContractorRow, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

// JobsForContractor returns job posts where the contractor shares at least
// one required skill, the post has no booking of any status yet, and the
// contractor is free on the post's deadline date. Any shared skill is enough
// here; the strict all-mandatory rule only applies in the reverse direction.
func (r *PostgresMatchRepository) JobsForContractor(ctx context.Context, contractorID uuid.UUID) ([]JobPost, error) {
	rows, err := r.db.Query(ctx,
		`SELECT jp.id, jp.user_id, jp.title, jp.description, jp.price, jp.deadline, jp.created_at
		 FROM job_posts jp
		 WHERE EXISTS (
		     SELECT 1
		     FROM job_skills js
		     JOIN user_skills us ON us.skill_id = js.skill_id
		     WHERE js.job_post_id = jp.id AND us.user_id = $1
		 )
		 AND NOT EXISTS (
		     SELECT 1 FROM bookings b WHERE b.job_post_id = jp.id
		 )
		 AND NOT EXISTS (
		     SELECT 1 FROM bookings b2 WHERE b2.user_id = $1 AND b2.booking_date = jp.deadline
		 )
		 ORDER BY jp.deadline ASC
		 LIMIT $2`,
		contractorID, matchLimit,
	)
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

// CoverageForJob aggregates skill coverage per contractor for one job post.
// Only contractors sharing at least one required skill appear; ordering is
// total matched skills descending with user id as a stable tiebreak.
func (r *PostgresMatchRepository) CoverageForJob(ctx context.Context, jobPostID uuid.UUID) ([]CoverageRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.username, COALESCE(u.name, ''), COALESCE(u.surname, ''),
		        COUNT(DISTINCT js.skill_id) FILTER (WHERE js.is_mandatory) AS required_matched,
		        (SELECT COUNT(*) FROM job_skills WHERE job_post_id = $1 AND is_mandatory) AS total_required,
		        COUNT(DISTINCT js.skill_id) AS total_matched
		 FROM users u
		 JOIN user_skills us ON us.user_id = u.id
		 JOIN job_skills js ON js.skill_id = us.skill_id AND js.job_post_id = $1
		 WHERE u.role = 'contractor'
		 GROUP BY u.id, u.username, u.name, u.surname
		 ORDER BY total_matched DESC, u.id ASC`,
		jobPostID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CoverageRow, 0)
	for rows.Next() {
		var c CoverageRow
		err := rows.Scan(&c.UserID, &c.Username, &c.Name, &c.Surname, &c.RequiredMatched, &c.TotalRequired, &c.TotalMatched)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchContractors returns contractors holding every requested skill with no
// booking dated inside [from, to].
func (r *PostgresMatchRepository) SearchContractors(ctx context.Context, skillIDs []uuid.UUID, from, to time.Time) ([]ContractorRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.username, COALESCE(u.name, ''), COALESCE(u.surname, ''), u.email
		 FROM users u
		 JOIN user_skills us ON us.user_id = u.id
		 WHERE u.role = 'contractor'
		   AND us.skill_id = ANY($1)
		   AND NOT EXISTS (
		       SELECT 1 FROM bookings b
		       WHERE b.user_id = u.id AND b.booking_date BETWEEN $3 AND $4
		   )
		 GROUP BY u.id, u.username, u.name, u.surname, u.email
		 HAVING COUNT(DISTINCT us.skill_id) = $2
		 ORDER BY u.name ASC NULLS LAST, u.username ASC
		 LIMIT $5`,
		skillIDs, len(skillIDs), from, to, matchLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ContractorRow, 0)
	for rows.Next() {
		var c ContractorRow
		if err := rows.Scan(&c.UserID, &c.Username, &c.Name, &c.Surname, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
