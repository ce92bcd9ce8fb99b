package handler

import (
	"errors"

	"craftlink/internal/delivery/http/middleware"
	"craftlink/internal/pkg/response"
	"craftlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RatingHandler struct {
	uc usecase.RatingUsecase
}

type createRatingRequest struct {
	TargetUserID uuid.UUID `json:"target_user_id"`
	Value        int       `json:"value"`
	FeedbackText *string   `json:"feedback_text"`
}

type updateRatingRequest struct {
	Value        int     `json:"value"`
	FeedbackText *string `json:"feedback_text"`
}

func NewRatingHandler(uc usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

// RegisterRoutes expects the protected API root; rating reads hang off user
// profiles while mutations live under /ratings.
func (h *RatingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/ratings", h.Create)
	r.Put("/ratings/:id", h.Update)
	r.Delete("/ratings/:id", h.Delete)

	r.Get("/users/:id/ratings", h.ListForUser)
	r.Get("/users/:id/ratings/summary", h.Summary)
}

func (h *RatingHandler) Create(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createRatingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), ident, usecase.CreateRatingInput{
		TargetUserID: req.TargetUserID,
		Value:        req.Value,
		FeedbackText: req.FeedbackText,
	})
	if err != nil {
		return mapRatingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, created)
}

func (h *RatingHandler) ListForUser(c fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListForUser(c.Context(), targetID)
	if err != nil {
		return mapRatingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *RatingHandler) Summary(c fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	summary, err := h.uc.Summary(c.Context(), targetID)
	if err != nil {
		return mapRatingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, summary)
}

func (h *RatingHandler) Update(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateRatingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), ident, id, usecase.UpdateRatingInput{
		Value:        req.Value,
		FeedbackText: req.FeedbackText,
	})
	if err != nil {
		return mapRatingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, updated)
}

func (h *RatingHandler) Delete(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), ident, id); err != nil {
		return mapRatingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapRatingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrRatingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Rating not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrSelfRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot rate yourself", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
