package handler

import (
	"errors"

	"quicksync/internal/delivery/http/dto"
	"quicksync/internal/delivery/http/middleware"
	"quicksync/internal/pkg/response"
	"quicksync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	FullName     string              `json:"full_name"`
	Bio          string              `json:"bio"`
	Skills       []string            `json:"skills"`
	Interests    []string            `json:"interests"`
	Availability map[string][]string `json:"availability"`
	EventTags    []string            `json:"event_tags"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetProfile)
	r.Put("/me", h.UpdateProfile)
	r.Get("/", h.ListCandidates)
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	u, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(u))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	u, err := h.uc.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		FullName:     req.FullName,
		Bio:          req.Bio,
		Skills:       req.Skills,
		Interests:    req.Interests,
		Availability: req.Availability,
		EventTags:    req.EventTags,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(u))
}

func (h *UserHandler) ListCandidates(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	users, err := h.uc.ListCandidates(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	out := make([]dto.UserProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserProfileResponse(u))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
