package handler

import (
	"craftlink/internal/delivery/http/dto"
	"craftlink/internal/delivery/http/middleware"
	"craftlink/internal/pkg/response"
	"craftlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AdminHandler bundles the admin-only surface: user management, the full
// booking and rating listings, and the platform overview.
type AdminHandler struct {
	admin    usecase.AdminUsecase
	users    usecase.UserUsecase
	bookings usecase.BookingUsecase
	ratings  usecase.RatingUsecase
}

type adminCreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Role     string `json:"role"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}

func NewAdminHandler(
	admin usecase.AdminUsecase,
	users usecase.UserUsecase,
	bookings usecase.BookingUsecase,
	ratings usecase.RatingUsecase,
) *AdminHandler {
	return &AdminHandler{admin: admin, users: users, bookings: bookings, ratings: ratings}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/overview", h.Overview)

	r.Get("/users", h.ListUsers)
	r.Post("/users", h.CreateUser)
	r.Delete("/users/:id", h.DeleteUser)
	r.Put("/users/:id/role", h.SetRole)

	r.Get("/bookings", h.ListBookings)
	r.Get("/ratings", h.ListRatings)
}

func (h *AdminHandler) Overview(c fiber.Ctx) error {
	ov, err := h.admin.Overview(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOverviewResponse(ov))
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	items, err := h.users.List(c.Context())
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *AdminHandler) CreateUser(c fiber.Ctx) error {
	var req adminCreateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.users.Create(c.Context(), usecase.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Surname:  req.Surname,
		Role:     req.Role,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, created)
}

func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.users.Delete(c.Context(), id); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) SetRole(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req setRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.users.SetRole(c.Context(), id, req.Role); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) ListBookings(c fiber.Ctx) error {
	items, err := h.bookings.ListAll(c.Context())
	if err != nil {
		return mapBookingUsecaseError(err)
	}

	res := make([]dto.AdminBookingResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewAdminBookingResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *AdminHandler) ListRatings(c fiber.Ctx) error {
	items, err := h.ratings.ListAll(c.Context())
	if err != nil {
		return mapRatingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
