package usecase

import (
	"context"
	"errors"
	"testing"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

type mockSkillRepo struct {
	exists bool
	err    error
}

func (m mockSkillRepo) List(context.Context) ([]repository.Skill, error) { return nil, m.err }
func (m mockSkillRepo) Create(_ context.Context, s repository.Skill) (repository.Skill, error) {
	if m.err != nil {
		return repository.Skill{}, m.err
	}
	return s, nil
}
func (m mockSkillRepo) Delete(context.Context, uuid.UUID) error { return m.err }
func (m mockSkillRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) {
	return m.exists, nil
}

type mockUserSkillRepo struct {
	added  *repository.UserSkill
	addErr error
}

func (m *mockUserSkillRepo) ListByUser(context.Context, uuid.UUID) ([]repository.UserSkill, error) {
	return nil, nil
}
func (m *mockUserSkillRepo) Add(_ context.Context, us repository.UserSkill) (repository.UserSkill, error) {
	if m.addErr != nil {
		return repository.UserSkill{}, m.addErr
	}
	m.added = &us
	return us, nil
}
func (m *mockUserSkillRepo) Remove(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type mockJobSkillRepo struct {
	added *repository.JobSkill
}

func (m *mockJobSkillRepo) ListByJob(context.Context, uuid.UUID) ([]repository.JobSkill, error) {
	return nil, nil
}
func (m *mockJobSkillRepo) Add(_ context.Context, js repository.JobSkill) (repository.JobSkill, error) {
	m.added = &js
	return js, nil
}
func (m *mockJobSkillRepo) Remove(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func TestAddUserSkill_ForbiddenForOthers(t *testing.T) {
	uc := NewSkillUsecase(mockSkillRepo{exists: true}, &mockUserSkillRepo{}, &mockJobSkillRepo{}, mockJobPostRepo{})

	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleContractor}
	_, err := uc.AddUserSkill(context.Background(), actor, uuid.New(), AddUserSkillInput{SkillID: uuid.New()})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAddUserSkill_AdminMayActForOthers(t *testing.T) {
	repo := &mockUserSkillRepo{}
	uc := NewSkillUsecase(mockSkillRepo{exists: true}, repo, &mockJobSkillRepo{}, mockJobPostRepo{})

	admin := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
	target := uuid.New()
	_, err := uc.AddUserSkill(context.Background(), admin, target, AddUserSkillInput{SkillID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.added == nil || repo.added.UserID != target {
		t.Fatalf("expected skill added to target user")
	}
}

func TestAddUserSkill_DefaultsAndValidation(t *testing.T) {
	repo := &mockUserSkillRepo{}
	uc := NewSkillUsecase(mockSkillRepo{exists: true}, repo, &mockJobSkillRepo{}, mockJobPostRepo{})

	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleContractor}

	if _, err := uc.AddUserSkill(context.Background(), actor, actor.UserID, AddUserSkillInput{SkillID: uuid.New()}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.added.ProficiencyLevel != "Beginner" {
		t.Fatalf("expected default proficiency Beginner, got %q", repo.added.ProficiencyLevel)
	}

	_, err := uc.AddUserSkill(context.Background(), actor, actor.UserID, AddUserSkillInput{
		SkillID:          uuid.New(),
		ProficiencyLevel: "Wizard",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown proficiency, got %v", err)
	}

}

func TestAddUserSkill_YearsClamped(t *testing.T) {
	repo := &mockUserSkillRepo{}
	uc := NewSkillUsecase(mockSkillRepo{exists: true}, repo, &mockJobSkillRepo{}, mockJobPostRepo{})

	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleContractor}

	cases := []struct {
		in   int
		want int
	}{
		{in: 100, want: 60},
		{in: 61, want: 60},
		{in: -3, want: 0},
		{in: 12, want: 12},
	}
	for _, tc := range cases {
		if _, err := uc.AddUserSkill(context.Background(), actor, actor.UserID, AddUserSkillInput{
			SkillID:         uuid.New(),
			YearsExperience: tc.in,
		}); err != nil {
			t.Fatalf("years=%d: unexpected err: %v", tc.in, err)
		}
		if repo.added.YearsExperience != tc.want {
			t.Fatalf("years=%d: stored %d, want %d", tc.in, repo.added.YearsExperience, tc.want)
		}
	}
}

func TestAddUserSkill_UnknownSkill(t *testing.T) {
	uc := NewSkillUsecase(mockSkillRepo{exists: false}, &mockUserSkillRepo{}, &mockJobSkillRepo{}, mockJobPostRepo{})

	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleContractor}
	_, err := uc.AddUserSkill(context.Background(), actor, actor.UserID, AddUserSkillInput{SkillID: uuid.New()})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestAddJobSkill_OwnerOnly(t *testing.T) {
	owner := uuid.New()
	jobSkills := &mockJobSkillRepo{}
	uc := NewSkillUsecase(mockSkillRepo{exists: true}, &mockUserSkillRepo{}, jobSkills, mockJobPostRepo{ownerID: owner})

	stranger := identity.Identity{UserID: uuid.New(), Role: identity.RoleClient}
	_, err := uc.AddJobSkill(context.Background(), stranger, uuid.New(), AddJobSkillInput{SkillID: uuid.New()})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	ownerIdent := identity.Identity{UserID: owner, Role: identity.RoleClient}
	_, err = uc.AddJobSkill(context.Background(), ownerIdent, uuid.New(), AddJobSkillInput{SkillID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if jobSkills.added.ImportanceLevel != "Medium" {
		t.Fatalf("expected default importance Medium, got %q", jobSkills.added.ImportanceLevel)
	}
}

func TestAddJobSkill_MissingJobPost(t *testing.T) {
	uc := NewSkillUsecase(mockSkillRepo{exists: true}, &mockUserSkillRepo{}, &mockJobSkillRepo{}, mockJobPostRepo{err: repository.ErrNotFound})

	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleClient}
	_, err := uc.AddJobSkill(context.Background(), actor, uuid.New(), AddJobSkillInput{SkillID: uuid.New()})
	if !errors.Is(err, ErrJobPostNotFound) {
		t.Fatalf("expected ErrJobPostNotFound, got %v", err)
	}
}

func TestCreateSkill_BlankName(t *testing.T) {
	uc := NewSkillUsecase(mockSkillRepo{}, &mockUserSkillRepo{}, &mockJobSkillRepo{}, mockJobPostRepo{})

	if _, err := uc.Create(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
