package usecase

import (
	"context"
	"errors"
	"time"

	"craftlink/internal/domain/booking"
	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrJobPostNotFound  = errors.New("job post not found")
	ErrOwnJobBooking    = errors.New("cannot request own job")
	ErrDuplicateBooking = errors.New("already requested this date")
	ErrInvalidStatus    = errors.New("invalid status")
)

type CreateBookingInput struct {
	JobPostID   uuid.UUID
	BookingDate time.Time
}

type BookingItem struct {
	ID          uuid.UUID
	JobPostID   uuid.UUID
	UserID      uuid.UUID
	BookingDate time.Time
	Status      string
	CreatedAt   time.Time
}

type RequesterBookingItem struct {
	BookingItem
	JobTitle          string
	ClientID          uuid.UUID
	ClientUsername    string
	ClientDisplayName string
}

type OwnerBookingItem struct {
	BookingItem
	JobTitle              string
	ContractorID          uuid.UUID
	ContractorUsername    string
	ContractorDisplayName string
}

type AdminBookingItem struct {
	BookingItem
	JobTitle              string
	ContractorID          uuid.UUID
	ContractorUsername    string
	ContractorDisplayName string
	ClientID              uuid.UUID
	ClientUsername        string
	ClientDisplayName     string
}

// BookingCache is the slice of the redis cache booking writes invalidate.
// Booking rows feed the availability side of matching, so stale match entries
// are dropped whenever a booking is created, restatused, or deleted.
type BookingCache interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type BookingUsecase interface {
	Create(ctx context.Context, ident identity.Identity, in CreateBookingInput) (BookingItem, error)
	Get(ctx context.Context, ident identity.Identity, id uuid.UUID) (BookingItem, error)
	SetStatus(ctx context.Context, ident identity.Identity, id uuid.UUID, rawStatus string) (BookingItem, error)
	Delete(ctx context.Context, ident identity.Identity, id uuid.UUID) error
	ListMine(ctx context.Context, ident identity.Identity) ([]RequesterBookingItem, error)
	ListForMyJobs(ctx context.Context, ident identity.Identity) ([]OwnerBookingItem, error)
	ListAll(ctx context.Context) ([]AdminBookingItem, error)
}

type Bookings struct {
	bookings repository.BookingRepository
	jobs     repository.JobPostRepository
	cache    BookingCache
}

func NewBookingUsecase(bookings repository.BookingRepository, jobs repository.JobPostRepository, cache BookingCache) *Bookings {
	return &Bookings{bookings: bookings, jobs: jobs, cache: cache}
}

// invalidateMatches drops cached match reads made stale by a booking write.
// Best effort: a failed delete only shortens nothing, the TTL still bounds
// staleness.
func (u *Bookings) invalidateMatches(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, "match:jobs:*")
	_ = u.cache.DeleteByPattern(ctx, "search:contractors:*")
}

func (u *Bookings) Create(ctx context.Context, ident identity.Identity, in CreateBookingInput) (BookingItem, error) {
	if ident.UserID == uuid.Nil {
		return BookingItem{}, ErrUnauthorized
	}
	if in.JobPostID == uuid.Nil || in.BookingDate.IsZero() {
		return BookingItem{}, ErrInvalidInput
	}

	owner, err := u.jobs.OwnerID(ctx, in.JobPostID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return BookingItem{}, ErrJobPostNotFound
		}
		return BookingItem{}, ErrInternal
	}
	if owner == ident.UserID {
		return BookingItem{}, ErrOwnJobBooking
	}

	dup, err := u.bookings.ExistsDuplicate(ctx, in.JobPostID, ident.UserID, in.BookingDate)
	if err != nil {
		return BookingItem{}, ErrInternal
	}
	if dup {
		return BookingItem{}, ErrDuplicateBooking
	}

	created, err := u.bookings.Create(ctx, repository.Booking{
		ID:          uuid.New(),
		JobPostID:   in.JobPostID,
		UserID:      ident.UserID,
		BookingDate: in.BookingDate,
		Status:      booking.StatusPending,
	})
	if err != nil {
		// Lost the race against an identical concurrent request.
		if repository.IsUniqueViolation(err) {
			return BookingItem{}, ErrDuplicateBooking
		}
		return BookingItem{}, ErrInternal
	}

	u.invalidateMatches(ctx)
	return toBookingItem(created), nil
}

func (u *Bookings) Get(ctx context.Context, ident identity.Identity, id uuid.UUID) (BookingItem, error) {
	if id == uuid.Nil {
		return BookingItem{}, ErrInvalidInput
	}
	b, err := u.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return BookingItem{}, ErrBookingNotFound
		}
		return BookingItem{}, ErrInternal
	}
	return toBookingItem(b), nil
}

// SetStatus applies a status change on behalf of the job-post owner or an
// admin. Any known status may be set; confirming additionally cancels every
// other pending request for the same slot inside one transaction.
func (u *Bookings) SetStatus(ctx context.Context, ident identity.Identity, id uuid.UUID, rawStatus string) (BookingItem, error) {
	newStatus, ok := booking.ParseStatus(rawStatus)
	if !ok {
		return BookingItem{}, ErrInvalidStatus
	}
	if id == uuid.Nil {
		return BookingItem{}, ErrInvalidInput
	}

	b, err := u.bookings.GetWithJobOwner(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return BookingItem{}, ErrBookingNotFound
		}
		return BookingItem{}, ErrInternal
	}

	if !ident.CanActFor(b.JobOwnerID) {
		return BookingItem{}, ErrForbidden
	}

	if newStatus == booking.StatusConfirmed {
		err = u.bookings.Confirm(ctx, b.ID, b.JobPostID, b.BookingDate)
	} else {
		err = u.bookings.UpdateStatus(ctx, b.ID, newStatus)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return BookingItem{}, ErrBookingNotFound
		}
		return BookingItem{}, ErrInternal
	}

	u.invalidateMatches(ctx)

	updated, err := u.bookings.GetByID(ctx, b.ID)
	if err != nil {
		return BookingItem{}, ErrInternal
	}
	return toBookingItem(updated), nil
}

// Delete is allowed for the requester, the job-post owner, or an admin.
func (u *Bookings) Delete(ctx context.Context, ident identity.Identity, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}

	b, err := u.bookings.GetWithJobOwner(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return ErrInternal
	}

	allowed := ident.IsAdmin() || b.UserID == ident.UserID || b.JobOwnerID == ident.UserID
	if !allowed {
		return ErrForbidden
	}

	if err := u.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return ErrInternal
	}
	u.invalidateMatches(ctx)
	return nil
}

func (u *Bookings) ListMine(ctx context.Context, ident identity.Identity) ([]RequesterBookingItem, error) {
	rows, err := u.bookings.ListByRequester(ctx, ident.UserID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]RequesterBookingItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, RequesterBookingItem{
			BookingItem:       toBookingItem(r.Booking),
			JobTitle:          r.JobTitle,
			ClientID:          r.ClientID,
			ClientUsername:    r.ClientUsername,
			ClientDisplayName: r.ClientDisplayName,
		})
	}
	return out, nil
}

func (u *Bookings) ListForMyJobs(ctx context.Context, ident identity.Identity) ([]OwnerBookingItem, error) {
	rows, err := u.bookings.ListForOwner(ctx, ident.UserID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]OwnerBookingItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, OwnerBookingItem{
			BookingItem:           toBookingItem(r.Booking),
			JobTitle:              r.JobTitle,
			ContractorID:          r.ContractorID,
			ContractorUsername:    r.ContractorUsername,
			ContractorDisplayName: r.ContractorDisplayName,
		})
	}
	return out, nil
}

func (u *Bookings) ListAll(ctx context.Context) ([]AdminBookingItem, error) {
	rows, err := u.bookings.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]AdminBookingItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminBookingItem{
			BookingItem:           toBookingItem(r.Booking),
			JobTitle:              r.JobTitle,
			ContractorID:          r.ContractorID,
			ContractorUsername:    r.ContractorUsername,
			ContractorDisplayName: r.ContractorDisplayName,
			ClientID:              r.ClientID,
			ClientUsername:        r.ClientUsername,
			ClientDisplayName:     r.ClientDisplayName,
		})
	}
	return out, nil
}

func toBookingItem(b repository.Booking) BookingItem {
	return BookingItem{
		ID:          b.ID,
		JobPostID:   b.JobPostID,
		UserID:      b.UserID,
		BookingDate: b.BookingDate,
		Status:      b.Status.DisplayName(),
		CreatedAt:   b.CreatedAt,
	}
}
