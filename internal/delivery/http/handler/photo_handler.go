package handler

import (
	"errors"
	"io"

	"craftlink/internal/delivery/http/middleware"
	"craftlink/internal/pkg/response"
	"craftlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PhotoHandler struct {
	uc usecase.PhotoUsecase
}

func NewPhotoHandler(uc usecase.PhotoUsecase) *PhotoHandler {
	return &PhotoHandler{uc: uc}
}

// RegisterRoutes expects the protected API root so the per-user listing can
// live under /users.
func (h *PhotoHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/photos", h.Upload)
	r.Put("/photos/:id", h.Update)
	r.Delete("/photos/:id", h.Delete)

	r.Get("/users/:id/photos", h.ListForUser)
}

func (h *PhotoHandler) Upload(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing image file", nil, err)
	}
	src, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable upload", nil, err)
	}
	defer src.Close()

	caption := captionFromForm(c)

	created, err := h.uc.Upload(c.Context(), ident, caption, src, fh.Filename)
	if err != nil {
		return mapPhotoUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, created)
}

func (h *PhotoHandler) ListForUser(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapPhotoUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

// Update takes multipart form data; both the caption field and the image
// file are optional.
func (h *PhotoHandler) Update(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.UpdatePhotoInput{Caption: captionFromForm(c)}

	var src io.ReadCloser
	if fh, err := c.FormFile("image"); err == nil {
		src, err = fh.Open()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable upload", nil, err)
		}
		defer src.Close()
		in.File = src
		in.OriginalName = fh.Filename
	}

	updated, err := h.uc.Update(c.Context(), ident, id, in)
	if err != nil {
		return mapPhotoUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, updated)
}

func (h *PhotoHandler) Delete(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), ident, id); err != nil {
		return mapPhotoUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func captionFromForm(c fiber.Ctx) *string {
	if form, err := c.MultipartForm(); err == nil {
		if vals, ok := form.Value["caption"]; ok && len(vals) > 0 {
			return &vals[0]
		}
	}
	return nil
}

func mapPhotoUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrPhotoNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Photo not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
