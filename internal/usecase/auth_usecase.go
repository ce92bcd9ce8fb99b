package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"craftlink/internal/domain/identity"
	"craftlink/internal/pkg/jwt"
	"craftlink/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("username or email already registered")
	ErrInvalidRole        = errors.New("invalid role")
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Surname  string
	Role     string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (UserItem, string, error)
	Login(ctx context.Context, in LoginInput) (UserItem, string, error)
}

type Auth struct {
	users UserLookupRepository
	jwt   jwt.Service
}

// UserLookupRepository is the slice of the user repository auth needs.
type UserLookupRepository interface {
	Create(ctx context.Context, u repository.User) (repository.User, error)
	GetByUsername(ctx context.Context, username string) (repository.User, error)
}

func NewAuthUsecase(users UserLookupRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (UserItem, string, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := strings.TrimSpace(in.Role)

	if username == "" || email == "" || in.Password == "" || role == "" {
		return UserItem{}, "", ErrInvalidInput
	}
	if !emailRe.MatchString(email) {
		return UserItem{}, "", ErrInvalidInput
	}
	if !identity.ValidRole(role) || role == identity.RoleAdmin {
		// Admin accounts are provisioned, never self-registered.
		return UserItem{}, "", ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserItem{}, "", ErrInternal
	}

	created, err := u.users.Create(ctx, repository.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Name:         optionalString(in.Name),
		Surname:      optionalString(in.Surname),
		Role:         role,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return UserItem{}, "", ErrUserAlreadyExists
		}
		return UserItem{}, "", ErrInternal
	}

	token, err := u.jwt.Generate(created.ID, created.Role, created.Username)
	if err != nil {
		return UserItem{}, "", ErrInternal
	}
	return toUserItem(created, ""), token, nil
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (UserItem, string, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return UserItem{}, "", ErrInvalidCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserItem{}, "", ErrInvalidCredentials
		}
		return UserItem{}, "", ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)) != nil {
		return UserItem{}, "", ErrInvalidCredentials
	}

	token, err := u.jwt.Generate(usr.ID, usr.Role, usr.Username)
	if err != nil {
		return UserItem{}, "", ErrInternal
	}
	return toUserItem(usr, ""), token, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
