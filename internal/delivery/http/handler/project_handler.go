package handler

import (
	"quicksync/internal/delivery/http/dto"
	"quicksync/internal/delivery/http/middleware"
	"quicksync/internal/pkg/response"
	"quicksync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/projects", h.SuggestProjects)
}

// SuggestProjects tailors the list to the caller's skills when a
// session is present; anonymous callers get the general list.
func (h *ProjectHandler) SuggestProjects(c fiber.Ctx) error {
	userID := uuid.Nil
	if id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID); ok {
		userID = id
	}

	projects, err := h.uc.SuggestProjects(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.ProjectSuggestionResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.NewProjectSuggestionResponse(p))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
