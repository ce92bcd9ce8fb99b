package repository

import (
	"context"
	"fmt"
	"time"

	"craftlink/internal/database"
	"craftlink/internal/domain/booking"

	"github.com/google/uuid"
)

type Booking struct {
	ID          uuid.UUID
	JobPostID   uuid.UUID
	UserID      uuid.UUID
	BookingDate time.Time
	Status      booking.Status
	CreatedAt   time.Time
}

// BookingWithOwner carries the owning client's id alongside the booking so
// authorization can be decided with a single round trip.
type BookingWithOwner struct {
	Booking
	JobOwnerID uuid.UUID
}

type RequesterBookingRow struct {
	Booking
	JobTitle          string
	ClientID          uuid.UUID
	ClientUsername    string
	ClientDisplayName string
}

type OwnerBookingRow struct {
	Booking
	JobTitle              string
	ContractorID          uuid.UUID
	ContractorUsername    string
	ContractorDisplayName string
}

type AdminBookingRow struct {
	Booking
	JobTitle              string
	ContractorID          uuid.UUID
	ContractorUsername    string
	ContractorDisplayName string
	ClientID              uuid.UUID
	ClientUsername        string
	ClientDisplayName     string
}

type BookingRepository interface {
	Create(ctx context.Context, b Booking) (Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (Booking, error)
	GetWithJobOwner(ctx context.Context, id uuid.UUID) (BookingWithOwner, error)
	ExistsDuplicate(ctx context.Context, jobPostID, userID uuid.UUID, date time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
	Confirm(ctx context.Context, id, jobPostID uuid.UUID, date time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRequester(ctx context.Context, userID uuid.UUID) ([]RequesterBookingRow, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]OwnerBookingRow, error)
	ListAll(ctx context.Context) ([]AdminBookingRow, error)
}

const bookingColumns = `id, job_post_id, user_id, booking_date, status, created_at`

type PostgresBookingRepository struct {
	db database.DB
}

func NewPostgresBookingRepository(db database.DB) *PostgresBookingRepository {
	return &PostgresBookingRepository{db: db}
}

func (r *PostgresBookingRepository) Create(ctx context.Context, b Booking) (Booking, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO bookings (id, job_post_id, user_id, booking_date, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+bookingColumns,
		b.ID, b.JobPostID, b.UserID, b.BookingDate, b.Status,
	)
	return scanBooking(row)
}

func (r *PostgresBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (r *PostgresBookingRepository) GetWithJobOwner(ctx context.Context, id uuid.UUID) (BookingWithOwner, error) {
	row := r.db.QueryRow(ctx,
		`SELECT b.id, b.job_post_id, b.user_id, b.booking_date, b.status, b.created_at, jp.user_id
		 FROM bookings b
		 JOIN job_posts jp ON jp.id = b.job_post_id
		 WHERE b.id = $1`,
		id,
	)

	var out BookingWithOwner
	err := row.Scan(&out.ID, &out.JobPostID, &out.UserID, &out.BookingDate, &out.Status, &out.CreatedAt, &out.JobOwnerID)
	if err != nil {
		if isNoRows(err) {
			return BookingWithOwner{}, ErrNotFound
		}
		return BookingWithOwner{}, err
	}
	return out, nil
}

func (r *PostgresBookingRepository) ExistsDuplicate(ctx context.Context, jobPostID, userID uuid.UUID, date time.Time) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE job_post_id = $1 AND user_id = $2 AND booking_date = $3)`,
		jobPostID, userID, date,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	affected, err := r.db.Exec(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Confirm sets the booking to confirmed and forces every other pending
// booking for the same (job post, date) slot to canceled. Both statements run
// in one transaction so readers never observe a confirmed booking next to a
// still-pending sibling for the same slot.
func (r *PostgresBookingRepository) Confirm(ctx context.Context, id, jobPostID uuid.UUID, date time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	affected, err := tx.Exec(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2`,
		booking.StatusConfirmed, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings
		 SET status = $1
		 WHERE job_post_id = $2 AND booking_date = $3 AND id <> $4 AND status = $5`,
		booking.StatusCanceled, jobPostID, date, id, booking.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("cascade cancel: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresBookingRepository) ListByRequester(ctx context.Context, userID uuid.UUID) ([]RequesterBookingRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.job_post_id, b.user_id, b.booking_date, b.status, b.created_at,
		        jp.title,
		        cu.id, cu.username, CONCAT_WS(' ', cu.name, cu.surname)
		 FROM bookings b
		 JOIN job_posts jp ON jp.id = b.job_post_id
		 JOIN users cu ON cu.id = jp.user_id
		 WHERE b.user_id = $1
		 ORDER BY b.booking_date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RequesterBookingRow, 0)
	for rows.Next() {
		var it RequesterBookingRow
		err := rows.Scan(
			&it.ID, &it.JobPostID, &it.UserID, &it.BookingDate, &it.Status, &it.CreatedAt,
			&it.JobTitle, &it.ClientID, &it.ClientUsername, &it.ClientDisplayName,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresBookingRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]OwnerBookingRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.job_post_id, b.user_id, b.booking_date, b.status, b.created_at,
		        jp.title,
		        u.id, u.username, CONCAT_WS(' ', u.name, u.surname)
		 FROM bookings b
		 JOIN job_posts jp ON jp.id = b.job_post_id
		 JOIN users u ON u.id = b.user_id
		 WHERE jp.user_id = $1
		 ORDER BY b.booking_date DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OwnerBookingRow, 0)
	for rows.Next() {
		var it OwnerBookingRow
		err := rows.Scan(
			&it.ID, &it.JobPostID, &it.UserID, &it.BookingDate, &it.Status, &it.CreatedAt,
			&it.JobTitle, &it.ContractorID, &it.ContractorUsername, &it.ContractorDisplayName,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresBookingRepository) ListAll(ctx context.Context) ([]AdminBookingRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.job_post_id, b.user_id, b.booking_date, b.status, b.created_at,
		        jp.title,
		        u.id, u.username, CONCAT_WS(' ', u.name, u.surname),
		        cu.id, cu.username, CONCAT_WS(' ', cu.name, cu.surname)
		 FROM bookings b
		 JOIN users u ON u.id = b.user_id
		 JOIN job_posts jp ON jp.id = b.job_post_id
		 JOIN users cu ON cu.id = jp.user_id
		 ORDER BY b.booking_date DESC, b.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AdminBookingRow, 0)
	for rows.Next() {
		var it AdminBookingRow
		err := rows.Scan(
			&it.ID, &it.JobPostID, &it.UserID, &it.BookingDate, &it.Status, &it.CreatedAt,
			&it.JobTitle,
			&it.ContractorID, &it.ContractorUsername, &it.ContractorDisplayName,
			&it.ClientID, &it.ClientUsername, &it.ClientDisplayName,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanBooking(row scanner) (Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.JobPostID, &b.UserID, &b.BookingDate, &b.Status, &b.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	return b, nil
}
