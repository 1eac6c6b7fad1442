package handler

import (
	"errors"

	"quicksync/internal/delivery/http/dto"
	"quicksync/internal/delivery/http/middleware"
	"quicksync/internal/domain/matching"
	"quicksync/internal/pkg/response"
	"quicksync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

type findMatchesRequest struct {
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	Limit     int      `json:"limit"`
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

// RegisterPublicRoutes exposes the anonymous lexical search.
func (h *MatchHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/find", h.FindMatchesByQuery)
}

// RegisterProtectedRoutes exposes the identity-based flows.
func (h *MatchHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/recommendations", h.Recommendations)
	r.Post("/refresh-embedding", h.RefreshEmbedding)
	r.Get("/availability/:user_id", h.AvailabilityOverlap)
}

func (h *MatchHandler) FindMatchesByQuery(c fiber.Ctx) error {
	var req findMatchesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.FindMatchesByQuery(c.Context(), usecase.MatchQueryInput{
		Skills:    req.Skills,
		Interests: req.Interests,
		Limit:     req.Limit,
	})
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toMatchResults(items))
}

func (h *MatchHandler) Recommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := fiber.Query[int](c, "limit", 0)

	items, err := h.uc.FindMatches(c.Context(), userID, limit)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toMatchResults(items))
}

func (h *MatchHandler) RefreshEmbedding(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	emb, err := h.uc.RefreshEmbedding(c.Context(), userID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := dto.EmbeddingRefreshResponse{
		Refreshed: true,
		Dimension: len(emb.CombinedEmbedding),
		UpdatedAt: emb.UpdatedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) AvailabilityOverlap(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	otherID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	overlap, err := h.uc.AvailabilityOverlap(c.Context(), userID, otherID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := dto.AvailabilityOverlapResponse{
		OverlapPercentage: overlap.Percentage,
		CommonTimes:       overlap.CommonSlots,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// toMatchResults converts ranked items to the wire shape, scaling the
// float scores to integer percentages at this boundary only.
func toMatchResults(items []usecase.MatchItem) []dto.MatchResultResponse {
	out := make([]dto.MatchResultResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.MatchResultResponse{
			ID:                  it.User.ID,
			FullName:            it.User.FullName,
			Bio:                 it.User.Bio,
			Skills:              it.User.Skills,
			Interests:           it.User.Interests,
			SkillsSimilarity:    matching.ClampPercentage(it.SkillsSimilarity),
			InterestsSimilarity: matching.ClampPercentage(it.InterestsSimilarity),
			CombinedSimilarity:  matching.ClampPercentage(it.CombinedSimilarity),
			Score:               matching.ClampPercentage(it.Score),
		})
	}
	return out
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidLimit):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
