package routes

import (
	"craftlink/internal/delivery/http/handler"
	"craftlink/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Registry wires the handler set onto the fiber app. Route groups:
//
//	/healthz              public
//	/api/v1/auth          public
//	/api/v1/...           bearer token required
//	/api/v1/admin/...     bearer token + admin role
type Registry struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	JobPosts *handler.JobPostHandler
	Bookings *handler.BookingHandler
	Skills   *handler.SkillHandler
	Matches  *handler.MatchHandler
	Ratings  *handler.RatingHandler
	Photos   *handler.PhotoHandler
	Admin    *handler.AdminHandler
	Health   *handler.HealthHandler

	AuthMw *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	r.Auth.RegisterRoutes(v1.Group("/auth"))

	protected := v1.Group("", r.AuthMw.Middleware())

	r.Users.RegisterRoutes(protected.Group("/users"))
	r.JobPosts.RegisterRoutes(protected.Group("/job-posts"))
	r.Bookings.RegisterRoutes(protected.Group("/bookings"))
	r.Matches.RegisterRoutes(protected.Group("/matches"))

	// These handlers span several resource roots, so they take the
	// protected group itself.
	r.Skills.RegisterRoutes(protected)
	r.Ratings.RegisterRoutes(protected)
	r.Photos.RegisterRoutes(protected)

	admin := protected.Group("/admin", r.AuthMw.RequireAdmin())
	r.Admin.RegisterRoutes(admin)
	r.Skills.RegisterAdminRoutes(admin)
}
