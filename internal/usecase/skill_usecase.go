package usecase

import (
	"context"
	"errors"
	"strings"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound     = errors.New("skill not found")
	ErrSkillExists       = errors.New("skill already exists")
	ErrSkillAlreadyAdded = errors.New("skill already attached")
)

var proficiencyLevels = map[string]bool{
	"Beginner":     true,
	"Intermediate": true,
	"Expert":       true,
}

var importanceLevels = map[string]bool{
	"Low":    true,
	"Medium": true,
	"High":   true,
}

const maxYearsExperience = 60

type AddUserSkillInput struct {
	SkillID          uuid.UUID
	ProficiencyLevel string
	YearsExperience  int
}

type AddJobSkillInput struct {
	SkillID         uuid.UUID
	ImportanceLevel string
	IsMandatory     bool
}

type SkillUsecase interface {
	List(ctx context.Context) ([]repository.Skill, error)
	Create(ctx context.Context, name string) (repository.Skill, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]repository.UserSkill, error)
	AddUserSkill(ctx context.Context, actor identity.Identity, userID uuid.UUID, in AddUserSkillInput) (repository.UserSkill, error)
	RemoveUserSkill(ctx context.Context, actor identity.Identity, userID, skillID uuid.UUID) error

	ListJobSkills(ctx context.Context, jobPostID uuid.UUID) ([]repository.JobSkill, error)
	AddJobSkill(ctx context.Context, actor identity.Identity, jobPostID uuid.UUID, in AddJobSkillInput) (repository.JobSkill, error)
	RemoveJobSkill(ctx context.Context, actor identity.Identity, jobPostID, skillID uuid.UUID) error
}

type Skills struct {
	skills     repository.SkillRepository
	userSkills repository.UserSkillRepository
	jobSkills  repository.JobSkillRepository
	posts      repository.JobPostRepository
}

func NewSkillUsecase(
	skills repository.SkillRepository,
	userSkills repository.UserSkillRepository,
	jobSkills repository.JobSkillRepository,
	posts repository.JobPostRepository,
) *Skills {
	return &Skills{skills: skills, userSkills: userSkills, jobSkills: jobSkills, posts: posts}
}

func (u *Skills) List(ctx context.Context) ([]repository.Skill, error) {
	out, err := u.skills.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skills) Create(ctx context.Context, name string) (repository.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Skill{}, ErrInvalidInput
	}
	created, err := u.skills.Create(ctx, repository.Skill{ID: uuid.New(), Name: name})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return repository.Skill{}, ErrSkillExists
		}
		return repository.Skill{}, ErrInternal
	}
	return created, nil
}

func (u *Skills) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.skills.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Skills) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	out, err := u.userSkills.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skills) AddUserSkill(ctx context.Context, actor identity.Identity, userID uuid.UUID, in AddUserSkillInput) (repository.UserSkill, error) {
	if !actor.CanActFor(userID) {
		return repository.UserSkill{}, ErrForbidden
	}

	proficiency := in.ProficiencyLevel
	if proficiency == "" {
		proficiency = "Beginner"
	}
	if !proficiencyLevels[proficiency] {
		return repository.UserSkill{}, ErrInvalidInput
	}
	// Years of experience are clamped, not rejected.
	years := min(max(in.YearsExperience, 0), maxYearsExperience)

	ok, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return repository.UserSkill{}, ErrInternal
	}
	if !ok {
		return repository.UserSkill{}, ErrSkillNotFound
	}

	created, err := u.userSkills.Add(ctx, repository.UserSkill{
		UserID:           userID,
		SkillID:          in.SkillID,
		ProficiencyLevel: proficiency,
		YearsExperience:  years,
	})
	if err != nil {
		switch {
		case repository.IsUniqueViolation(err):
			return repository.UserSkill{}, ErrSkillAlreadyAdded
		case repository.IsForeignKeyViolation(err):
			return repository.UserSkill{}, ErrSkillNotFound
		default:
			return repository.UserSkill{}, ErrInternal
		}
	}
	return created, nil
}

func (u *Skills) RemoveUserSkill(ctx context.Context, actor identity.Identity, userID, skillID uuid.UUID) error {
	if !actor.CanActFor(userID) {
		return ErrForbidden
	}
	if err := u.userSkills.Remove(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Skills) ListJobSkills(ctx context.Context, jobPostID uuid.UUID) ([]repository.JobSkill, error) {
	out, err := u.jobSkills.ListByJob(ctx, jobPostID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skills) AddJobSkill(ctx context.Context, actor identity.Identity, jobPostID uuid.UUID, in AddJobSkillInput) (repository.JobSkill, error) {
	owner, err := u.posts.OwnerID(ctx, jobPostID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.JobSkill{}, ErrJobPostNotFound
		}
		return repository.JobSkill{}, ErrInternal
	}
	if !actor.CanActFor(owner) {
		return repository.JobSkill{}, ErrForbidden
	}

	importance := in.ImportanceLevel
	if importance == "" {
		importance = "Medium"
	}
	if !importanceLevels[importance] {
		return repository.JobSkill{}, ErrInvalidInput
	}

	ok, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return repository.JobSkill{}, ErrInternal
	}
	if !ok {
		return repository.JobSkill{}, ErrSkillNotFound
	}

	created, err := u.jobSkills.Add(ctx, repository.JobSkill{
		JobPostID:       jobPostID,
		SkillID:         in.SkillID,
		ImportanceLevel: importance,
		IsMandatory:     in.IsMandatory,
	})
	if err != nil {
		switch {
		case repository.IsUniqueViolation(err):
			return repository.JobSkill{}, ErrSkillAlreadyAdded
		case repository.IsForeignKeyViolation(err):
			return repository.JobSkill{}, ErrSkillNotFound
		default:
			return repository.JobSkill{}, ErrInternal
		}
	}
	return created, nil
}

func (u *Skills) RemoveJobSkill(ctx context.Context, actor identity.Identity, jobPostID, skillID uuid.UUID) error {
	owner, err := u.posts.OwnerID(ctx, jobPostID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobPostNotFound
		}
		return ErrInternal
	}
	if !actor.CanActFor(owner) {
		return ErrForbidden
	}
	if err := u.jobSkills.Remove(ctx, jobPostID, skillID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}
