package handler

import (
	"errors"
	"time"

	"craftlink/internal/delivery/http/middleware"
	"craftlink/internal/pkg/response"
	"craftlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobPostHandler struct {
	uc usecase.JobPostUsecase
}

type createJobPostRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Deadline    time.Time `json:"deadline"`
}

type patchJobPostRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price"`
	Deadline    *time.Time `json:"deadline"`
}

func NewJobPostHandler(uc usecase.JobPostUsecase) *JobPostHandler {
	return &JobPostHandler{uc: uc}
}

func (h *JobPostHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Patch)
	r.Delete("/:id", h.Delete)
}

func (h *JobPostHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapJobPostUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *JobPostHandler) Create(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createJobPostRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), ident, usecase.CreateJobPostInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return mapJobPostUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, created)
}

func (h *JobPostHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobPostUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *JobPostHandler) Patch(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req patchJobPostRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Patch(c.Context(), ident, id, usecase.PatchJobPostInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return mapJobPostUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, updated)
}

func (h *JobPostHandler) Delete(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), ident, id); err != nil {
		return mapJobPostUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapJobPostUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobPostNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job post not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNothingToPatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "No updatable fields provided", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
