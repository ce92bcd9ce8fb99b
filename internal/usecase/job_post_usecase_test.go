package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

func TestJobPostCreate_Validation(t *testing.T) {
	uc := NewJobPostUsecase(mockJobPostRepo{})
	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleClient}
	deadline := time.Now().AddDate(0, 1, 0)

	cases := []struct {
		name string
		in   CreateJobPostInput
	}{
		{"blank title", CreateJobPostInput{Title: "  ", Price: 10, Deadline: deadline}},
		{"negative price", CreateJobPostInput{Title: "Fence repair", Price: -1, Deadline: deadline}},
		{"zero deadline", CreateJobPostInput{Title: "Fence repair", Price: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Create(context.Background(), actor, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestJobPostCreate_ContractorForbidden(t *testing.T) {
	uc := NewJobPostUsecase(mockJobPostRepo{})
	in := CreateJobPostInput{Title: "Paint my fence", Price: 50, Deadline: time.Now().AddDate(0, 1, 0)}

	worker := identity.Identity{UserID: uuid.New(), Role: identity.RoleContractor}
	if _, err := uc.Create(context.Background(), worker, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for contractor, got %v", err)
	}

	admin := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
	if _, err := uc.Create(context.Background(), admin, in); err != nil {
		t.Fatalf("unexpected err for admin: %v", err)
	}
}

func TestJobPostPatch_StrangerForbidden(t *testing.T) {
	owner := uuid.New()
	uc := NewJobPostUsecase(mockJobPostRepo{ownerID: owner})

	stranger := identity.Identity{UserID: uuid.New(), Role: identity.RoleClient}
	title := "New title"
	_, err := uc.Patch(context.Background(), stranger, uuid.New(), PatchJobPostInput{Title: &title})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJobPostPatch_EmptyPatchRejected(t *testing.T) {
	owner := uuid.New()
	uc := NewJobPostUsecase(mockJobPostRepo{ownerID: owner})

	ownerIdent := identity.Identity{UserID: owner, Role: identity.RoleClient}
	_, err := uc.Patch(context.Background(), ownerIdent, uuid.New(), PatchJobPostInput{})
	if !errors.Is(err, ErrNothingToPatch) {
		t.Fatalf("expected ErrNothingToPatch, got %v", err)
	}
}

func TestJobPostPatch_NegativePriceRejected(t *testing.T) {
	owner := uuid.New()
	uc := NewJobPostUsecase(mockJobPostRepo{ownerID: owner})

	ownerIdent := identity.Identity{UserID: owner, Role: identity.RoleClient}
	price := -5.0
	_, err := uc.Patch(context.Background(), ownerIdent, uuid.New(), PatchJobPostInput{Price: &price})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestJobPostDelete_MissingPost(t *testing.T) {
	uc := NewJobPostUsecase(mockJobPostRepo{err: repository.ErrNotFound})

	admin := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
	if err := uc.Delete(context.Background(), admin, uuid.New()); !errors.Is(err, ErrJobPostNotFound) {
		t.Fatalf("expected ErrJobPostNotFound, got %v", err)
	}
}

func TestJobPostDelete_AdminAllowed(t *testing.T) {
	uc := NewJobPostUsecase(mockJobPostRepo{ownerID: uuid.New()})

	admin := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
	if err := uc.Delete(context.Background(), admin, uuid.New()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
