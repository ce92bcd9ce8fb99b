package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

type mockPhotoRepo struct {
	photo   repository.Photo
	getErr  error
	deleted bool

	lastCaption  *string
	lastFilename string
}

func (m *mockPhotoRepo) Create(_ context.Context, p repository.Photo) (repository.Photo, error) {
	return p, nil
}

func (m *mockPhotoRepo) GetByID(context.Context, uuid.UUID) (repository.Photo, error) {
	if m.getErr != nil {
		return repository.Photo{}, m.getErr
	}
	return m.photo, nil
}

func (m *mockPhotoRepo) ListByUser(context.Context, uuid.UUID) ([]repository.Photo, error) {
	return []repository.Photo{m.photo}, nil
}

func (m *mockPhotoRepo) Update(_ context.Context, _ uuid.UUID, caption *string, filename string) error {
	m.lastCaption = caption
	m.lastFilename = filename
	m.photo.Caption = caption
	m.photo.ImageFilename = filename
	return nil
}

func (m *mockPhotoRepo) Delete(context.Context, uuid.UUID) error {
	m.deleted = true
	return nil
}

func TestPhotoUpload_BuildsPublicURL(t *testing.T) {
	files := &mockFileStore{}
	uc := NewPhotoUsecase(&mockPhotoRepo{}, files, "http://localhost:8080")

	actor := identity.Identity{UserID: uuid.New(), Role: identity.RoleContractor}
	item, err := uc.Upload(context.Background(), actor, nil, strings.NewReader("img"), "deck.jpg")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if item.ImageURL != "http://localhost:8080/uploads/photos/generated-deck.jpg" {
		t.Fatalf("unexpected image url %q", item.ImageURL)
	}
}

func TestPhotoUpdate_OwnerOnlyAndReplacesFile(t *testing.T) {
	owner := uuid.New()
	repo := &mockPhotoRepo{photo: repository.Photo{
		ID:            uuid.New(),
		UserID:        owner,
		ImageFilename: "old.jpg",
	}}
	files := &mockFileStore{}
	uc := NewPhotoUsecase(repo, files, "http://localhost:8080")

	stranger := identity.Identity{UserID: uuid.New(), Role: identity.RoleContractor}
	_, err := uc.Update(context.Background(), stranger, repo.photo.ID, UpdatePhotoInput{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	ownerIdent := identity.Identity{UserID: owner, Role: identity.RoleContractor}
	_, err = uc.Update(context.Background(), ownerIdent, repo.photo.ID, UpdatePhotoInput{
		File:         strings.NewReader("img"),
		OriginalName: "new.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastFilename != "generated-new.jpg" {
		t.Fatalf("expected stored filename replaced, got %q", repo.lastFilename)
	}
	if len(files.removed) != 1 || files.removed[0] != "photos/old.jpg" {
		t.Fatalf("expected old file removed, got %v", files.removed)
	}
}

func TestPhotoUpdate_CaptionOnlyKeepsFile(t *testing.T) {
	owner := uuid.New()
	repo := &mockPhotoRepo{photo: repository.Photo{
		ID:            uuid.New(),
		UserID:        owner,
		ImageFilename: "keep.jpg",
	}}
	files := &mockFileStore{}
	uc := NewPhotoUsecase(repo, files, "http://localhost:8080")

	caption := "after sanding"
	ownerIdent := identity.Identity{UserID: owner, Role: identity.RoleContractor}
	_, err := uc.Update(context.Background(), ownerIdent, repo.photo.ID, UpdatePhotoInput{Caption: &caption})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastFilename != "keep.jpg" {
		t.Fatalf("expected filename untouched, got %q", repo.lastFilename)
	}
	if len(files.removed) != 0 {
		t.Fatalf("no file should be removed, got %v", files.removed)
	}
}

func TestPhotoDelete_AdminAllowedAndFileRemoved(t *testing.T) {
	repo := &mockPhotoRepo{photo: repository.Photo{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		ImageFilename: "gone.jpg",
	}}
	files := &mockFileStore{}
	uc := NewPhotoUsecase(repo, files, "http://localhost:8080")

	admin := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
	if err := uc.Delete(context.Background(), admin, repo.photo.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !repo.deleted {
		t.Fatalf("expected row deleted")
	}
	if len(files.removed) != 1 || files.removed[0] != "photos/gone.jpg" {
		t.Fatalf("expected file removal attempted, got %v", files.removed)
	}
}
