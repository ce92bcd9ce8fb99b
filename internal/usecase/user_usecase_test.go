package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	user       repository.User
	taken      bool
	getErr     error
	updateErr  error
	createdErr error

	lastSet  *repository.UpdateSet
	previous *string
}

func (m *mockUserRepo) Create(_ context.Context, u repository.User) (repository.User, error) {
	if m.createdErr != nil {
		return repository.User{}, m.createdErr
	}
	return u, nil
}

func (m *mockUserRepo) GetByID(context.Context, uuid.UUID) (repository.User, error) {
	if m.getErr != nil {
		return repository.User{}, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepo) GetByUsername(context.Context, string) (repository.User, error) {
	if m.getErr != nil {
		return repository.User{}, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepo) List(context.Context) ([]repository.User, error) {
	return []repository.User{m.user}, nil
}

func (m *mockUserRepo) Delete(context.Context, uuid.UUID) error { return m.getErr }

func (m *mockUserRepo) UsernameTakenByOther(context.Context, string, uuid.UUID) (bool, error) {
	return m.taken, nil
}

func (m *mockUserRepo) UpdateFields(_ context.Context, _ uuid.UUID, set *repository.UpdateSet) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.lastSet = set
	return nil
}

func (m *mockUserRepo) SetRole(context.Context, uuid.UUID, string) error { return m.getErr }

func (m *mockUserRepo) SetProfilePicture(context.Context, uuid.UUID, string) (*string, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.previous, nil
}

type mockFileStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (m *mockFileStore) Save(subdir string, _ io.Reader, originalName string) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	name := "generated-" + originalName
	m.saved = append(m.saved, subdir+"/"+name)
	return name, nil
}

func (m *mockFileStore) Remove(subdir, filename string) error {
	m.removed = append(m.removed, subdir+"/"+filename)
	return nil
}

func (m *mockFileStore) PublicURL(origin, subdir, filename string) string {
	return origin + "/uploads/" + subdir + "/" + filename
}

func testHash(plain string) (string, error) { return "hashed:" + plain, nil }

func actorFor(u repository.User) identity.Identity {
	return identity.Identity{UserID: u.ID, Role: u.Role, Username: u.Username}
}

func TestPatchMe_EmptyPatchRejected(t *testing.T) {
	user := repository.User{ID: uuid.New(), Username: "mira", Role: identity.RoleClient}
	uc := NewUserUsecase(&mockUserRepo{user: user}, &mockFileStore{}, "http://localhost:8080", testHash)

	_, err := uc.PatchMe(context.Background(), actorFor(user), PatchMeInput{})
	if !errors.Is(err, ErrNothingToPatch) {
		t.Fatalf("expected ErrNothingToPatch, got %v", err)
	}
}

func TestPatchMe_BlankUsernameTreatedAsUnset(t *testing.T) {
	user := repository.User{ID: uuid.New(), Username: "mira", Role: identity.RoleClient}
	uc := NewUserUsecase(&mockUserRepo{user: user}, &mockFileStore{}, "http://localhost:8080", testHash)

	blank := "   "
	_, err := uc.PatchMe(context.Background(), actorFor(user), PatchMeInput{Username: &blank})
	if !errors.Is(err, ErrNothingToPatch) {
		t.Fatalf("expected blank username to leave nothing to patch, got %v", err)
	}
}

func TestPatchMe_UsernameConflict(t *testing.T) {
	user := repository.User{ID: uuid.New(), Username: "mira", Role: identity.RoleClient}
	uc := NewUserUsecase(&mockUserRepo{user: user, taken: true}, &mockFileStore{}, "http://localhost:8080", testHash)

	newName := "taken"
	_, err := uc.PatchMe(context.Background(), actorFor(user), PatchMeInput{Username: &newName})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestPatchMe_InvalidAge(t *testing.T) {
	user := repository.User{ID: uuid.New(), Username: "mira", Role: identity.RoleClient}
	uc := NewUserUsecase(&mockUserRepo{user: user}, &mockFileStore{}, "http://localhost:8080", testHash)

	age := -1
	_, err := uc.PatchMe(context.Background(), actorFor(user), PatchMeInput{Age: &age})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPatchMe_ClearsBioAndKeepsOthers(t *testing.T) {
	user := repository.User{ID: uuid.New(), Username: "mira", Role: identity.RoleClient}
	repo := &mockUserRepo{user: user}
	uc := NewUserUsecase(repo, &mockFileStore{}, "http://localhost:8080", testHash)

	empty := ""
	name := "Mirabel"
	_, err := uc.PatchMe(context.Background(), actorFor(user), PatchMeInput{Name: &name, Bio: &empty})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastSet == nil || repo.lastSet.Len() != 2 {
		t.Fatalf("expected exactly name and bio in the update set")
	}
}

func TestSetProfilePicture_RemovesPrevious(t *testing.T) {
	old := "old.png"
	user := repository.User{ID: uuid.New(), Username: "mira", Role: identity.RoleClient}
	repo := &mockUserRepo{user: user, previous: &old}
	files := &mockFileStore{}
	uc := NewUserUsecase(repo, files, "http://localhost:8080", testHash)

	_, err := uc.SetProfilePicture(context.Background(), actorFor(user), nil, "new.png")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(files.removed) != 1 || files.removed[0] != "profile_pictures/old.png" {
		t.Fatalf("expected previous file removed, got %v", files.removed)
	}
}

func TestAdminCreate_RoleDefaultsToClient(t *testing.T) {
	uc := NewUserUsecase(&mockUserRepo{}, &mockFileStore{}, "http://localhost:8080", testHash)

	created, err := uc.Create(context.Background(), CreateUserInput{
		Username: "pat",
		Email:    "pat@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Role != identity.RoleClient {
		t.Fatalf("expected default role client, got %q", created.Role)
	}
}

func TestAdminSetRole_RejectsUnknownRole(t *testing.T) {
	uc := NewUserUsecase(&mockUserRepo{}, &mockFileStore{}, "http://localhost:8080", testHash)

	if err := uc.SetRole(context.Background(), uuid.New(), "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
