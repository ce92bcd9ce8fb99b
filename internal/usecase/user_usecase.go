package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"
	"craftlink/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrNothingToPatch = errors.New("no updatable fields provided")
)

const profilePictureSubdir = "profile_pictures"

// UserItem is the outward projection of a user. The password hash never
// leaves the usecase layer.
type UserItem struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Name              *string   `json:"name"`
	Surname           *string   `json:"surname"`
	Role              string    `json:"role"`
	Age               *int      `json:"age"`
	Bio               *string   `json:"bio"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// PublicUserItem is what any authenticated caller may see about another user.
type PublicUserItem struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Name              *string   `json:"name"`
	Surname           *string   `json:"surname"`
	Role              string    `json:"role"`
	Bio               *string   `json:"bio"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
}

// PatchMeInput carries partial-update fields. Nil means "leave unchanged";
// a pointer to the empty string clears the column where clearing is allowed.
type PatchMeInput struct {
	Username *string
	Name     *string
	Surname  *string
	Age      *int
	Bio      *string
}

type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Surname  string
	Role     string
}

type UserUsecase interface {
	Me(ctx context.Context, actor identity.Identity) (UserItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (PublicUserItem, error)
	PatchMe(ctx context.Context, actor identity.Identity, in PatchMeInput) (UserItem, error)
	SetProfilePicture(ctx context.Context, actor identity.Identity, src io.Reader, originalName string) (UserItem, error)
	List(ctx context.Context) ([]UserItem, error)
	Create(ctx context.Context, in CreateUserInput) (UserItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetRole(ctx context.Context, id uuid.UUID, role string) error
}

type Users struct {
	users  repository.UserRepository
	files  storage.FileStore
	origin string

	hashPassword func(plain string) (string, error)
}

func NewUserUsecase(users repository.UserRepository, files storage.FileStore, publicOrigin string, hashPassword func(string) (string, error)) *Users {
	return &Users{users: users, files: files, origin: publicOrigin, hashPassword: hashPassword}
}

func (u *Users) Me(ctx context.Context, actor identity.Identity) (UserItem, error) {
	usr, err := u.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserItem{}, ErrUserNotFound
		}
		return UserItem{}, ErrInternal
	}
	return toUserItem(usr, u.pictureURL(usr.ProfilePicture)), nil
}

func (u *Users) GetByID(ctx context.Context, id uuid.UUID) (PublicUserItem, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return PublicUserItem{}, ErrUserNotFound
		}
		return PublicUserItem{}, ErrInternal
	}
	return PublicUserItem{
		ID:                usr.ID,
		Username:          usr.Username,
		Name:              usr.Name,
		Surname:           usr.Surname,
		Role:              usr.Role,
		Bio:               usr.Bio,
		ProfilePictureURL: u.pictureURL(usr.ProfilePicture),
	}, nil
}

// PatchMe applies only the fields present in the input. Sending a blank
// username is treated as "unchanged" rather than an attempt to clear it;
// name, surname and bio may be cleared with an empty string.
func (u *Users) PatchMe(ctx context.Context, actor identity.Identity, in PatchMeInput) (UserItem, error) {
	set := repository.NewUpdateSet()

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username != "" {
			taken, err := u.users.UsernameTakenByOther(ctx, username, actor.UserID)
			if err != nil {
				return UserItem{}, ErrInternal
			}
			if taken {
				return UserItem{}, ErrUsernameTaken
			}
			set.Set("username", username)
		}
	}
	if in.Name != nil {
		set.Set("name", optionalString(*in.Name))
	}
	if in.Surname != nil {
		set.Set("surname", optionalString(*in.Surname))
	}
	if in.Bio != nil {
		set.Set("bio", optionalString(*in.Bio))
	}
	if in.Age != nil {
		if *in.Age < 0 || *in.Age > 150 {
			return UserItem{}, ErrInvalidInput
		}
		set.Set("age", *in.Age)
	}

	if set.Empty() {
		return UserItem{}, ErrNothingToPatch
	}

	if err := u.users.UpdateFields(ctx, actor.UserID, set); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return UserItem{}, ErrUserNotFound
		case repository.IsUniqueViolation(err):
			return UserItem{}, ErrUsernameTaken
		default:
			return UserItem{}, ErrInternal
		}
	}
	return u.Me(ctx, actor)
}

func (u *Users) SetProfilePicture(ctx context.Context, actor identity.Identity, src io.Reader, originalName string) (UserItem, error) {
	filename, err := u.files.Save(profilePictureSubdir, src, originalName)
	if err != nil {
		return UserItem{}, ErrInternal
	}

	previous, err := u.users.SetProfilePicture(ctx, actor.UserID, filename)
	if err != nil {
		_ = u.files.Remove(profilePictureSubdir, filename)
		if errors.Is(err, repository.ErrNotFound) {
			return UserItem{}, ErrUserNotFound
		}
		return UserItem{}, ErrInternal
	}

	if previous != nil && *previous != "" {
		_ = u.files.Remove(profilePictureSubdir, *previous)
	}
	return u.Me(ctx, actor)
}

func (u *Users) List(ctx context.Context) ([]UserItem, error) {
	all, err := u.users.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	items := make([]UserItem, 0, len(all))
	for _, usr := range all {
		items = append(items, toUserItem(usr, u.pictureURL(usr.ProfilePicture)))
	}
	return items, nil
}

// Create is the admin path; unlike Register it may assign any valid role.
func (u *Users) Create(ctx context.Context, in CreateUserInput) (UserItem, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := strings.TrimSpace(in.Role)

	if username == "" || email == "" || in.Password == "" {
		return UserItem{}, ErrInvalidInput
	}
	if !emailRe.MatchString(email) {
		return UserItem{}, ErrInvalidInput
	}
	if role == "" {
		role = identity.RoleClient
	}
	if !identity.ValidRole(role) {
		return UserItem{}, ErrInvalidRole
	}

	hash, err := u.hashPassword(in.Password)
	if err != nil {
		return UserItem{}, ErrInternal
	}

	created, err := u.users.Create(ctx, repository.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Name:         optionalString(in.Name),
		Surname:      optionalString(in.Surname),
		Role:         role,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return UserItem{}, ErrUserAlreadyExists
		}
		return UserItem{}, ErrInternal
	}
	return toUserItem(created, ""), nil
}

func (u *Users) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Users) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if !identity.ValidRole(role) {
		return ErrInvalidRole
	}
	if err := u.users.SetRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Users) pictureURL(filename *string) string {
	if filename == nil || *filename == "" {
		return ""
	}
	return u.files.PublicURL(u.origin, profilePictureSubdir, *filename)
}

func toUserItem(u repository.User, pictureURL string) UserItem {
	return UserItem{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Name:              u.Name,
		Surname:           u.Surname,
		Role:              u.Role,
		Age:               u.Age,
		Bio:               u.Bio,
		ProfilePictureURL: pictureURL,
		CreatedAt:         u.CreatedAt,
	}
}
