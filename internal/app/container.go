package app

import (
	"context"
	"log"
	"time"

	"craftlink/internal/config"
	"craftlink/internal/database"
	"craftlink/internal/database/migration"
	dbpostgres "craftlink/internal/database/postgres"
	"craftlink/internal/infrastructure/cache"
	"craftlink/internal/pkg/jwt"
	"craftlink/internal/repository"
	"craftlink/internal/storage"
	"craftlink/internal/usecase"

	"golang.org/x/crypto/bcrypt"
)

// Container owns the process-wide dependencies and the usecase graph built
// on top of them.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service
	Files  storage.FileStore

	Auth     usecase.AuthUsecase
	Users    usecase.UserUsecase
	JobPosts usecase.JobPostUsecase
	Bookings usecase.BookingUsecase
	Skills   usecase.SkillUsecase
	Matching usecase.MatchingUsecase
	Ratings  usecase.RatingUsecase
	Photos   usecase.PhotoUsecase
	Admin    usecase.AdminUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	files := storage.NewDisk(cfg.Uploads.Dir)

	userRepo := repository.NewPostgresUserRepository(db)
	jobPostRepo := repository.NewPostgresJobPostRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	userSkillRepo := repository.NewPostgresUserSkillRepository(db)
	jobSkillRepo := repository.NewPostgresJobSkillRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)
	photoRepo := repository.NewPostgresPhotoRepository(db)
	statsRepo := repository.NewPostgresStatsRepository(db)

	hashPassword := func(plain string) (string, error) {
		b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		return string(b), err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		JWT:    jwtSvc,
		Files:  files,

		Auth:     usecase.NewAuthUsecase(userRepo, jwtSvc),
		Users:    usecase.NewUserUsecase(userRepo, files, cfg.App.PublicOrigin, hashPassword),
		JobPosts: usecase.NewJobPostUsecase(jobPostRepo),
		Bookings: usecase.NewBookingUsecase(bookingRepo, jobPostRepo, redisCache),
		Skills:   usecase.NewSkillUsecase(skillRepo, userSkillRepo, jobSkillRepo, jobPostRepo),
		Matching: usecase.NewMatchingUsecase(matchRepo, jobPostRepo, redisCache, cfg.Redis.TTL),
		Ratings:  usecase.NewRatingUsecase(ratingRepo, userRepo),
		Photos:   usecase.NewPhotoUsecase(photoRepo, files, cfg.App.PublicOrigin),
		Admin:    usecase.NewAdminUsecase(statsRepo),
	}
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
