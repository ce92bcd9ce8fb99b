package handler

import (
	"errors"
	"strings"
	"time"

	"craftlink/internal/delivery/http/middleware"
	"craftlink/internal/pkg/response"
	"craftlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.JobsForMe)
	r.Get("/job-posts/:id/contractors", h.ContractorsForJob)
	r.Get("/contractors/search", h.SearchContractors)
}

// JobsForMe lists open jobs the calling contractor shares at least one
// skill with and is free to take.
func (h *MatchHandler) JobsForMe(c fiber.Ctx) error {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.JobsForContractor(c.Context(), ident.UserID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *MatchHandler) ContractorsForJob(c fiber.Ctx) error {
	jobPostID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ContractorsForJob(c.Context(), jobPostID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *MatchHandler) SearchContractors(c fiber.Ctx) error {
	skillIDs, err := parseSkillIDs(c.Query("skill_ids"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "skill_ids must be comma-separated UUIDs", nil, err)
	}

	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "from must be YYYY-MM-DD", nil, err)
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "to must be YYYY-MM-DD", nil, err)
	}

	items, err := h.uc.SearchContractors(c.Context(), usecase.SearchContractorsInput{
		SkillIDs: skillIDs,
		From:     from,
		To:       to,
	})
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func parseSkillIDs(raw string) ([]uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDateQuery(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, raw)
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobPostNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job post not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
