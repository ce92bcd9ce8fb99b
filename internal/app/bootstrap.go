package app

import (
	"fmt"
	"log"
	"strings"

	"craftlink/internal/config"
	"craftlink/internal/delivery/http/handler"
	"craftlink/internal/delivery/http/middleware"
	"craftlink/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware(container.Logger)
	accessMw := middleware.NewAccessLogMiddleware(container.Logger)
	authMw := middleware.NewAuthMiddleware(container.JWT)

	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	f.Use("/uploads", static.New(cfg.Uploads.Dir))

	registry := &routes.Registry{
		Auth:     handler.NewAuthHandler(container.Auth),
		Users:    handler.NewUserHandler(container.Users),
		JobPosts: handler.NewJobPostHandler(container.JobPosts),
		Bookings: handler.NewBookingHandler(container.Bookings),
		Skills:   handler.NewSkillHandler(container.Skills),
		Matches:  handler.NewMatchHandler(container.Matching),
		Ratings:  handler.NewRatingHandler(container.Ratings),
		Photos:   handler.NewPhotoHandler(container.Photos),
		Admin:    handler.NewAdminHandler(container.Admin, container.Users, container.Bookings, container.Ratings),
		Health:   handler.NewHealthHandler(container.DB),
		AuthMw:   authMw,
	}
	registry.Register(f)

	app := &App{Fiber: f, Container: container}
	return app, container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
