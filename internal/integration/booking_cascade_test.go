package integration

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"craftlink/internal/config"
	"craftlink/internal/database"
	"craftlink/internal/database/migration"
	dbpostgres "craftlink/internal/database/postgres"
	"craftlink/internal/domain/booking"
	"craftlink/internal/repository"

	"github.com/google/uuid"
)

func TestIntegration_ConfirmCancelsCompetingPendings(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()
	runMigrations(t, ctx, db)

	users := repository.NewPostgresUserRepository(db)
	posts := repository.NewPostgresJobPostRepository(db)
	bookings := repository.NewPostgresBookingRepository(db)

	client := seedUser(t, ctx, users, "client")
	workerA := seedUser(t, ctx, users, "contractor")
	workerB := seedUser(t, ctx, users, "contractor")
	workerC := seedUser(t, ctx, users, "contractor")
	defer func() {
		for _, u := range []uuid.UUID{client, workerA, workerB, workerC} {
			_ = users.Delete(ctx, u)
		}
	}()

	post, err := posts.Create(ctx, repository.JobPost{
		ID:       uuid.New(),
		UserID:   client,
		Title:    "Rebuild garden fence",
		Price:    400,
		Deadline: time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("create job post: %v", err)
	}

	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	otherDate := date.AddDate(0, 0, 1)

	a := seedBooking(t, ctx, bookings, post.ID, workerA, date)
	b := seedBooking(t, ctx, bookings, post.ID, workerB, date)
	c := seedBooking(t, ctx, bookings, post.ID, workerC, otherDate)

	if err := bookings.Confirm(ctx, a, post.ID, date); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	assertStatus(t, ctx, bookings, a, booking.StatusConfirmed)
	assertStatus(t, ctx, bookings, b, booking.StatusCanceled)
	// A pending request for a different date is untouched.
	assertStatus(t, ctx, bookings, c, booking.StatusPending)

	// Deleting the post cascades to its bookings.
	if err := posts.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if _, err := bookings.GetByID(ctx, a); err != repository.ErrNotFound {
		t.Fatalf("expected booking gone with its post, got %v", err)
	}
}

func seedUser(t *testing.T, ctx context.Context, users repository.UserRepository, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	suffix := id.String()[:8]
	u, err := users.Create(ctx, repository.User{
		ID:           id,
		Username:     "it-" + suffix,
		Email:        "it-" + suffix + "@example.com",
		PasswordHash: "x",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func seedBooking(t *testing.T, ctx context.Context, bookings repository.BookingRepository, postID, userID uuid.UUID, date time.Time) uuid.UUID {
	t.Helper()

	b, err := bookings.Create(ctx, repository.Booking{
		ID:          uuid.New(),
		JobPostID:   postID,
		UserID:      userID,
		BookingDate: date,
		Status:      booking.StatusPending,
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b.ID
}

func assertStatus(t *testing.T, ctx context.Context, bookings repository.BookingRepository, id uuid.UUID, want booking.Status) {
	t.Helper()

	b, err := bookings.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if b.Status != want {
		t.Fatalf("booking %s: status %s, want %s", id, b.Status.DisplayName(), want.DisplayName())
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("CRAFTLINK_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("CRAFTLINK_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("CRAFTLINK_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("CRAFTLINK_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("CRAFTLINK_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("CRAFTLINK_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set CRAFTLINK_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate migrations dir")
	}
	dir := filepath.Join(filepath.Dir(file), "..", "..", "migrations")

	if err := (migration.Runner{Dir: dir}).Run(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
