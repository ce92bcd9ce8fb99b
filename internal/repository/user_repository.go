package repository

import (
	"context"
	"time"

	"craftlink/internal/database"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordHash   string
	Name           *string
	Surname        *string
	Role           string
	Age            *int
	Bio            *string
	ProfilePicture *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UsernameTakenByOther(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)
	UpdateFields(ctx context.Context, id uuid.UUID, set *UpdateSet) error
	SetRole(ctx context.Context, id uuid.UUID, role string) error
	SetProfilePicture(ctx context.Context, id uuid.UUID, filename string) (previous *string, err error)
}

const userColumns = `id, username, email, password_hash, name, surname, role, age, bio, profile_picture, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u User) (User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, username, email, password_hash, name, surname, role, age, bio)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+userColumns,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Name, u.Surname, u.Role, u.Age, u.Bio,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UsernameTakenByOther(ctx context.Context, username string, excludeID uuid.UUID) (bool, error) {
	var taken bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)`,
		username, excludeID,
	)
	if err := row.Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *PostgresUserRepository) UpdateFields(ctx context.Context, id uuid.UUID, set *UpdateSet) error {
	if set.Empty() {
		return nil
	}
	set.Set("updated_at", time.Now().UTC())

	clause, args := set.Clause(2)
	args = append([]any{id}, args...)

	affected, err := r.db.Exec(ctx, `UPDATE users SET `+clause+` WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = now() WHERE id = $2`, role, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SetProfilePicture(ctx context.Context, id uuid.UUID, filename string) (*string, error) {
	var previous *string
	row := r.db.QueryRow(ctx, `SELECT profile_picture FROM users WHERE id = $1`, id)
	if err := row.Scan(&previous); err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err := r.db.Exec(ctx,
		`UPDATE users SET profile_picture = $1, updated_at = now() WHERE id = $2`, filename, id)
	if err != nil {
		return nil, err
	}
	return previous, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Name, &u.Surname, &u.Role, &u.Age, &u.Bio, &u.ProfilePicture,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
