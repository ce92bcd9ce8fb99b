package repository

import (
	"context"

	"craftlink/internal/database"

	"github.com/google/uuid"
)

type UserSkill struct {
	UserID           uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	ProficiencyLevel string
	YearsExperience  int
}

type UserSkillRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	Add(ctx context.Context, us UserSkill) (UserSkill, error)
	Remove(ctx context.Context, userID, skillID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.user_id, us.skill_id, s.name, us.proficiency_level, us.years_experience
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkill, 0)
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(&us.UserID, &us.SkillID, &us.SkillName, &us.ProficiencyLevel, &us.YearsExperience); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) Add(ctx context.Context, us UserSkill) (UserSkill, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (user_id, skill_id, proficiency_level, years_experience)
		 VALUES ($1, $2, $3, $4)`,
		us.UserID, us.SkillID, us.ProficiencyLevel, us.YearsExperience,
	)
	if err != nil {
		return UserSkill{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT us.user_id, us.skill_id, s.name, us.proficiency_level, us.years_experience
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1 AND us.skill_id = $2`,
		us.UserID, us.SkillID,
	)

	var created UserSkill
	if err := row.Scan(&created.UserID, &created.SkillID, &created.SkillName, &created.ProficiencyLevel, &created.YearsExperience); err != nil {
		return UserSkill{}, err
	}
	return created, nil
}

func (r *PostgresUserSkillRepository) Remove(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
