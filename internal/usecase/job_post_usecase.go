package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

type CreateJobPostInput struct {
	Title       string
	Description string
	Price       float64
	Deadline    time.Time
}

// PatchJobPostInput mirrors PatchMeInput: nil leaves a field unchanged.
type PatchJobPostInput struct {
	Title       *string
	Description *string
	Price       *float64
	Deadline    *time.Time
}

type JobPostItem struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Deadline    time.Time `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
}

type JobPostUsecase interface {
	Create(ctx context.Context, actor identity.Identity, in CreateJobPostInput) (JobPostItem, error)
	Get(ctx context.Context, id uuid.UUID) (JobPostItem, error)
	List(ctx context.Context) ([]JobPostItem, error)
	Patch(ctx context.Context, actor identity.Identity, id uuid.UUID, in PatchJobPostInput) (JobPostItem, error)
	Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error
}

type JobPosts struct {
	posts repository.JobPostRepository
}

func NewJobPostUsecase(posts repository.JobPostRepository) *JobPosts {
	return &JobPosts{posts: posts}
}

func (u *JobPosts) Create(ctx context.Context, actor identity.Identity, in CreateJobPostInput) (JobPostItem, error) {
	// Only clients commission work; contractors bid, they do not post.
	if actor.Role != identity.RoleClient && !actor.IsAdmin() {
		return JobPostItem{}, ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	if title == "" || in.Price < 0 || in.Deadline.IsZero() {
		return JobPostItem{}, ErrInvalidInput
	}

	created, err := u.posts.Create(ctx, repository.JobPost{
		ID:          uuid.New(),
		UserID:      actor.UserID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Deadline:    in.Deadline,
	})
	if err != nil {
		return JobPostItem{}, ErrInternal
	}
	return toJobPostItem(created), nil
}

func (u *JobPosts) Get(ctx context.Context, id uuid.UUID) (JobPostItem, error) {
	jp, err := u.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return JobPostItem{}, ErrJobPostNotFound
		}
		return JobPostItem{}, ErrInternal
	}
	return toJobPostItem(jp), nil
}

func (u *JobPosts) List(ctx context.Context) ([]JobPostItem, error) {
	all, err := u.posts.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	items := make([]JobPostItem, 0, len(all))
	for _, jp := range all {
		items = append(items, toJobPostItem(jp))
	}
	return items, nil
}

func (u *JobPosts) Patch(ctx context.Context, actor identity.Identity, id uuid.UUID, in PatchJobPostInput) (JobPostItem, error) {
	owner, err := u.posts.OwnerID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return JobPostItem{}, ErrJobPostNotFound
		}
		return JobPostItem{}, ErrInternal
	}
	if !actor.CanActFor(owner) {
		return JobPostItem{}, ErrForbidden
	}

	set := repository.NewUpdateSet()
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return JobPostItem{}, ErrInvalidInput
		}
		set.Set("title", title)
	}
	if in.Description != nil {
		set.Set("description", strings.TrimSpace(*in.Description))
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return JobPostItem{}, ErrInvalidInput
		}
		set.Set("price", *in.Price)
	}
	if in.Deadline != nil {
		if in.Deadline.IsZero() {
			return JobPostItem{}, ErrInvalidInput
		}
		set.Set("deadline", *in.Deadline)
	}
	if set.Empty() {
		return JobPostItem{}, ErrNothingToPatch
	}

	if err := u.posts.UpdateFields(ctx, id, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return JobPostItem{}, ErrJobPostNotFound
		}
		return JobPostItem{}, ErrInternal
	}
	return u.Get(ctx, id)
}

func (u *JobPosts) Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error {
	owner, err := u.posts.OwnerID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobPostNotFound
		}
		return ErrInternal
	}
	if !actor.CanActFor(owner) {
		return ErrForbidden
	}

	if err := u.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobPostNotFound
		}
		return ErrInternal
	}
	return nil
}

func toJobPostItem(jp repository.JobPost) JobPostItem {
	return JobPostItem{
		ID:          jp.ID,
		UserID:      jp.UserID,
		Title:       jp.Title,
		Description: jp.Description,
		Price:       jp.Price,
		Deadline:    jp.Deadline,
		CreatedAt:   jp.CreatedAt,
	}
}
