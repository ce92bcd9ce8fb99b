package repository

import (
	"context"

	"craftlink/internal/database"

	"github.com/google/uuid"
)

type JobSkill struct {
	JobPostID       uuid.UUID
	SkillID         uuid.UUID
	SkillName       string
	ImportanceLevel string
	IsMandatory     bool
}

type JobSkillRepository interface {
	ListByJob(ctx context.Context, jobPostID uuid.UUID) ([]JobSkill, error)
	Add(ctx context.Context, js JobSkill) (JobSkill, error)
	Remove(ctx context.Context, jobPostID, skillID uuid.UUID) error
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

func (r *PostgresJobSkillRepository) ListByJob(ctx context.Context, jobPostID uuid.UUID) ([]JobSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT js.job_post_id, js.skill_id, s.name, js.importance_level, js.is_mandatory
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_post_id = $1
		 ORDER BY js.is_mandatory DESC, s.name ASC`,
		jobPostID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobSkill, 0)
	for rows.Next() {
		var js JobSkill
		if err := rows.Scan(&js.JobPostID, &js.SkillID, &js.SkillName, &js.ImportanceLevel, &js.IsMandatory); err != nil {
			return nil, err
		}
		out = append(out, js)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobSkillRepository) Add(ctx context.Context, js JobSkill) (JobSkill, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_skills (job_post_id, skill_id, importance_level, is_mandatory)
		 VALUES ($1, $2, $3, $4)`,
		js.JobPostID, js.SkillID, js.ImportanceLevel, js.IsMandatory,
	)
	if err != nil {
		return JobSkill{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT js.job_post_id, js.skill_id, s.name, js.importance_level, js.is_mandatory
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_post_id = $1 AND js.skill_id = $2`,
		js.JobPostID, js.SkillID,
	)

	var created JobSkill
	if err := row.Scan(&created.JobPostID, &created.SkillID, &created.SkillName, &created.ImportanceLevel, &created.IsMandatory); err != nil {
		return JobSkill{}, err
	}
	return created, nil
}

func (r *PostgresJobSkillRepository) Remove(ctx context.Context, jobPostID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM job_skills WHERE job_post_id = $1 AND skill_id = $2`,
		jobPostID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
