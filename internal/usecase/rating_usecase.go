package usecase

import (
	"context"
	"errors"
	"time"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrSelfRating     = errors.New("cannot rate yourself")
)

type CreateRatingInput struct {
	TargetUserID uuid.UUID
	Value        int
	FeedbackText *string
}

type UpdateRatingInput struct {
	Value        int
	FeedbackText *string
}

type RatingItem struct {
	ID           uuid.UUID `json:"id"`
	RaterID      uuid.UUID `json:"rater_id"`
	TargetUserID uuid.UUID `json:"target_user_id"`
	Value        int       `json:"value"`
	FeedbackText *string   `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

type RatingSummary struct {
	TargetUserID uuid.UUID `json:"target_user_id"`
	Average      *float64  `json:"average"`
	Count        int64     `json:"count"`
}

type RatingUsecase interface {
	Create(ctx context.Context, actor identity.Identity, in CreateRatingInput) (RatingItem, error)
	ListForUser(ctx context.Context, targetUserID uuid.UUID) ([]RatingItem, error)
	Summary(ctx context.Context, targetUserID uuid.UUID) (RatingSummary, error)
	Update(ctx context.Context, actor identity.Identity, id uuid.UUID, in UpdateRatingInput) (RatingItem, error)
	Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error
	ListAll(ctx context.Context) ([]RatingItem, error)
}

type Ratings struct {
	ratings repository.RatingRepository
	users   repository.UserRepository
}

func NewRatingUsecase(ratings repository.RatingRepository, users repository.UserRepository) *Ratings {
	return &Ratings{ratings: ratings, users: users}
}

func (u *Ratings) Create(ctx context.Context, actor identity.Identity, in CreateRatingInput) (RatingItem, error) {
	if in.Value < 1 || in.Value > 5 {
		return RatingItem{}, ErrInvalidInput
	}
	if in.TargetUserID == actor.UserID {
		return RatingItem{}, ErrSelfRating
	}

	if _, err := u.users.GetByID(ctx, in.TargetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return RatingItem{}, ErrUserNotFound
		}
		return RatingItem{}, ErrInternal
	}

	created, err := u.ratings.Create(ctx, repository.Rating{
		ID:           uuid.New(),
		RaterID:      actor.UserID,
		TargetUserID: in.TargetUserID,
		Value:        in.Value,
		FeedbackText: in.FeedbackText,
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return RatingItem{}, ErrUserNotFound
		}
		return RatingItem{}, ErrInternal
	}
	return toRatingItem(created), nil
}

func (u *Ratings) ListForUser(ctx context.Context, targetUserID uuid.UUID) ([]RatingItem, error) {
	all, err := u.ratings.ListForTarget(ctx, targetUserID)
	if err != nil {
		return nil, ErrInternal
	}
	return toRatingItems(all), nil
}

func (u *Ratings) Summary(ctx context.Context, targetUserID uuid.UUID) (RatingSummary, error) {
	avg, count, err := u.ratings.Average(ctx, targetUserID)
	if err != nil {
		return RatingSummary{}, ErrInternal
	}
	return RatingSummary{TargetUserID: targetUserID, Average: avg, Count: count}, nil
}

// Update is rater-only; admins may delete ratings but not rewrite them.
func (u *Ratings) Update(ctx context.Context, actor identity.Identity, id uuid.UUID, in UpdateRatingInput) (RatingItem, error) {
	if in.Value < 1 || in.Value > 5 {
		return RatingItem{}, ErrInvalidInput
	}

	existing, err := u.ratings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return RatingItem{}, ErrRatingNotFound
		}
		return RatingItem{}, ErrInternal
	}
	if existing.RaterID != actor.UserID {
		return RatingItem{}, ErrForbidden
	}

	if err := u.ratings.Update(ctx, id, in.Value, in.FeedbackText); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return RatingItem{}, ErrRatingNotFound
		}
		return RatingItem{}, ErrInternal
	}

	updated, err := u.ratings.GetByID(ctx, id)
	if err != nil {
		return RatingItem{}, ErrInternal
	}
	return toRatingItem(updated), nil
}

func (u *Ratings) Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error {
	existing, err := u.ratings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRatingNotFound
		}
		return ErrInternal
	}
	if existing.RaterID != actor.UserID && !actor.IsAdmin() {
		return ErrForbidden
	}

	if err := u.ratings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRatingNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Ratings) ListAll(ctx context.Context) ([]RatingItem, error) {
	all, err := u.ratings.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return toRatingItems(all), nil
}

func toRatingItems(all []repository.Rating) []RatingItem {
	items := make([]RatingItem, 0, len(all))
	for _, rt := range all {
		items = append(items, toRatingItem(rt))
	}
	return items
}

func toRatingItem(rt repository.Rating) RatingItem {
	return RatingItem{
		ID:           rt.ID,
		RaterID:      rt.RaterID,
		TargetUserID: rt.TargetUserID,
		Value:        rt.Value,
		FeedbackText: rt.FeedbackText,
		CreatedAt:    rt.CreatedAt,
	}
}
