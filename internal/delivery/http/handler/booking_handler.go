package handler

import (
	"errors"
	"time"

	"craftlink/internal/delivery/http/dto"
	"craftlink/internal/delivery/http/middleware"
	"craftlink/internal/pkg/response"
	"craftlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BookingHandler struct {
	uc usecase.BookingUsecase
}

type createBookingRequest struct {
	JobPostID   uuid.UUID `json:"job_post_id"`
	BookingDate string    `json:"booking_date"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

func NewBookingHandler(uc usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

func (h *BookingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/mine", h.ListMine)
	r.Get("/for-my-jobs", h.ListForMyJobs)
	r.Get("/:id", h.Get)
	r.Patch("/:id/status", h.SetStatus)
	r.Delete("/:id", h.Delete)
}

func (h *BookingHandler) Create(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createBookingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	date, err := time.Parse(time.DateOnly, req.BookingDate)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "booking_date must be YYYY-MM-DD", nil, err)
	}

	created, err := h.uc.Create(c.Context(), ident, usecase.CreateBookingInput{
		JobPostID:   req.JobPostID,
		BookingDate: date,
	})
	if err != nil {
		return mapBookingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewBookingResponse(created))
}

func (h *BookingHandler) Get(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.Get(c.Context(), ident, id)
	if err != nil {
		return mapBookingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBookingResponse(item))
}

func (h *BookingHandler) SetStatus(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateBookingStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.SetStatus(c.Context(), ident, id, req.Status)
	if err != nil {
		return mapBookingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBookingResponse(updated))
}

func (h *BookingHandler) Delete(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), ident, id); err != nil {
		return mapBookingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *BookingHandler) ListMine(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListMine(c.Context(), ident)
	if err != nil {
		return mapBookingUsecaseError(err)
	}

	res := make([]dto.RequesterBookingResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewRequesterBookingResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *BookingHandler) ListForMyJobs(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListForMyJobs(c.Context(), ident)
	if err != nil {
		return mapBookingUsecaseError(err)
	}

	res := make([]dto.OwnerBookingResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewOwnerBookingResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapBookingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Booking not found", nil, err)
	case errors.Is(err, usecase.ErrJobPostNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job post not found", nil, err)
	case errors.Is(err, usecase.ErrOwnJobBooking):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot request a booking on your own job", nil, err)
	case errors.Is(err, usecase.ErrDuplicateBooking):
		return middleware.NewAppError(fiber.StatusConflict, "Booking already requested for this date", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
