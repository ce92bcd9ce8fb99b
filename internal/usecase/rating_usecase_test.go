package usecase

import (
	"context"
	"errors"
	"testing"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

type mockRatingRepo struct {
	rating  repository.Rating
	getErr  error
	avg     *float64
	count   int64
	updated bool
	deleted bool
}

func (m *mockRatingRepo) Create(_ context.Context, rt repository.Rating) (repository.Rating, error) {
	return rt, nil
}

func (m *mockRatingRepo) GetByID(context.Context, uuid.UUID) (repository.Rating, error) {
	if m.getErr != nil {
		return repository.Rating{}, m.getErr
	}
	return m.rating, nil
}

func (m *mockRatingRepo) ListForTarget(context.Context, uuid.UUID) ([]repository.Rating, error) {
	return []repository.Rating{m.rating}, nil
}

func (m *mockRatingRepo) ListAll(context.Context) ([]repository.Rating, error) {
	return []repository.Rating{m.rating}, nil
}

func (m *mockRatingRepo) Average(context.Context, uuid.UUID) (*float64, int64, error) {
	return m.avg, m.count, nil
}

func (m *mockRatingRepo) Update(context.Context, uuid.UUID, int, *string) error {
	m.updated = true
	return nil
}

func (m *mockRatingRepo) Delete(context.Context, uuid.UUID) error {
	m.deleted = true
	return nil
}

func TestRatingCreate_ValueOutOfRange(t *testing.T) {
	uc := NewRatingUsecase(&mockRatingRepo{}, &mockUserRepo{})
	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleClient}

	for _, v := range []int{0, 6, -3} {
		_, err := uc.Create(context.Background(), actor, CreateRatingInput{
			TargetUserID: uuid.New(),
			Value:        v,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("value %d: expected ErrInvalidInput, got %v", v, err)
		}
	}
}

func TestRatingCreate_SelfRatingRejected(t *testing.T) {
	uc := NewRatingUsecase(&mockRatingRepo{}, &mockUserRepo{})
	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleClient}

	_, err := uc.Create(context.Background(), actor, CreateRatingInput{
		TargetUserID: actor.UserID,
		Value:        4,
	})
	if !errors.Is(err, ErrSelfRating) {
		t.Fatalf("expected ErrSelfRating, got %v", err)
	}
}

func TestRatingCreate_TargetMustExist(t *testing.T) {
	uc := NewRatingUsecase(&mockRatingRepo{}, &mockUserRepo{getErr: repository.ErrNotFound})
	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleClient}

	_, err := uc.Create(context.Background(), actor, CreateRatingInput{
		TargetUserID: uuid.New(),
		Value:        4,
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRatingUpdate_RaterOnly(t *testing.T) {
	rater := uuid.New()
	repo := &mockRatingRepo{rating: repository.Rating{ID: uuid.New(), RaterID: rater, Value: 3}}
	uc := NewRatingUsecase(repo, &mockUserRepo{})

	admin := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
	_, err := uc.Update(context.Background(), admin, repo.rating.ID, UpdateRatingInput{Value: 5})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin must not rewrite someone else's rating, got %v", err)
	}
	if repo.updated {
		t.Fatalf("update must not reach the repository")
	}

	owner := identity.Identity{UserID: rater, Role: identity.RoleClient}
	if _, err := uc.Update(context.Background(), owner, repo.rating.ID, UpdateRatingInput{Value: 5}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !repo.updated {
		t.Fatalf("expected update to run")
	}
}

func TestRatingDelete_AdminOrRater(t *testing.T) {
	rater := uuid.New()

	cases := []struct {
		name    string
		actor   identity.Identity
		wantErr error
	}{
		{"rater", identity.Identity{UserID: rater, Role: identity.RoleClient}, nil},
		{"admin", identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}, nil},
		{"stranger", identity.Identity{UserID: uuid.New(), Role: identity.RoleContractor}, ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRatingRepo{rating: repository.Rating{ID: uuid.New(), RaterID: rater, Value: 3}}
			uc := NewRatingUsecase(repo, &mockUserRepo{})

			err := uc.Delete(context.Background(), tc.actor, repo.rating.ID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if (tc.wantErr == nil) != repo.deleted {
				t.Fatalf("delete reached repository: %v, want %v", repo.deleted, tc.wantErr == nil)
			}
		})
	}
}

func TestRatingSummary_NoRatings(t *testing.T) {
	uc := NewRatingUsecase(&mockRatingRepo{count: 0}, &mockUserRepo{})

	summary, err := uc.Summary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Average != nil || summary.Count != 0 {
		t.Fatalf("expected nil average and zero count, got %+v", summary)
	}
}
