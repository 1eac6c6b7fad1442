package handler

import (
	"errors"

	"quicksync/internal/delivery/http/dto"
	"quicksync/internal/delivery/http/middleware"
	"quicksync/internal/pkg/response"
	"quicksync/internal/repository"
	"quicksync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TeamHandler struct {
	uc usecase.TeamUsecase
}

type createTeamRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	MaxSize        int      `json:"max_size"`
	RequiredSkills []string `json:"required_skills"`
	EventTags      []string `json:"event_tags"`
}

type updateTeamRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	MaxSize        int      `json:"max_size"`
	RequiredSkills []string `json:"required_skills"`
	EventTags      []string `json:"event_tags"`
	IsOpen         bool     `json:"is_open"`
}

type sendInvitationRequest struct {
	InviteeID uuid.UUID `json:"invitee_id"`
	Message   string    `json:"message"`
}

type respondInvitationRequest struct {
	Accept bool `json:"accept"`
}

func NewTeamHandler(uc usecase.TeamUsecase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

func (h *TeamHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.CreateTeam)
	r.Get("/", h.ListOpenTeams)
	r.Get("/mine", h.MyTeams)
	r.Get("/invitations", h.MyInvitations)
	r.Post("/invitations/:invitation_id/respond", h.RespondInvitation)
	r.Get("/:team_id", h.GetTeam)
	r.Put("/:team_id", h.UpdateTeam)
	r.Delete("/:team_id", h.DeleteTeam)
	r.Post("/:team_id/invitations", h.SendInvitation)
}

func (h *TeamHandler) CreateTeam(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.uc.CreateTeam(c.Context(), userID, usecase.CreateTeamInput{
		Name:           req.Name,
		Description:    req.Description,
		MaxSize:        req.MaxSize,
		RequiredSkills: req.RequiredSkills,
		EventTags:      req.EventTags,
	})
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Team created", dto.NewTeamResponse(t))
}

func (h *TeamHandler) ListOpenTeams(c fiber.Ctx) error {
	teams, err := h.uc.ListOpenTeams(c.Context())
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toTeamResponses(teams))
}

func (h *TeamHandler) MyTeams(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	teams, err := h.uc.MyTeams(c.Context(), userID)
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toTeamResponses(teams))
}

func (h *TeamHandler) GetTeam(c fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, members, err := h.uc.GetTeam(c.Context(), teamID)
	if err != nil {
		return mapTeamUsecaseError(err)
	}

	out := dto.TeamDetailResponse{
		TeamResponse: dto.NewTeamResponse(t),
		Members:      make([]dto.TeamMemberResponse, 0, len(members)),
	}
	for _, m := range members {
		out.Members = append(out.Members, dto.TeamMemberResponse{
			UserID:   m.UserID,
			Role:     m.Role,
			IsLeader: m.UserID == t.CreatorID,
			JoinedAt: m.JoinedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *TeamHandler) UpdateTeam(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.uc.UpdateTeam(c.Context(), userID, teamID, usecase.UpdateTeamInput{
		Name:           req.Name,
		Description:    req.Description,
		MaxSize:        req.MaxSize,
		RequiredSkills: req.RequiredSkills,
		EventTags:      req.EventTags,
		IsOpen:         req.IsOpen,
	})
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Team updated", dto.NewTeamResponse(t))
}

func (h *TeamHandler) DeleteTeam(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteTeam(c.Context(), userID, teamID); err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Team deleted", nil)
}

func (h *TeamHandler) SendInvitation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req sendInvitationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	inv, err := h.uc.SendInvitation(c.Context(), userID, teamID, usecase.SendInvitationInput{
		InviteeID: req.InviteeID,
		Message:   req.Message,
	})
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Invitation sent", dto.NewInvitationResponse(inv))
}

func (h *TeamHandler) MyInvitations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	invs, err := h.uc.MyInvitations(c.Context(), userID)
	if err != nil {
		return mapTeamUsecaseError(err)
	}

	out := make([]dto.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, dto.NewInvitationResponse(inv))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *TeamHandler) RespondInvitation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	invitationID, err := uuid.Parse(c.Params("invitation_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req respondInvitationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	inv, err := h.uc.RespondInvitation(c.Context(), userID, invitationID, req.Accept)
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Invitation updated", dto.NewInvitationResponse(inv))
}

func toTeamResponses(teams []repository.Team) []dto.TeamResponse {
	out := make([]dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, dto.NewTeamResponse(t))
	}
	return out
}

func mapTeamUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrTeamNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Team not found", nil, err)
	case errors.Is(err, usecase.ErrInvitationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Invitation not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrTeamFull):
		return middleware.NewAppError(fiber.StatusConflict, "Team is full", nil, err)
	case errors.Is(err, usecase.ErrAlreadyTeamMember):
		return middleware.NewAppError(fiber.StatusConflict, "User is already a member", nil, err)
	case errors.Is(err, usecase.ErrInvitationExists):
		return middleware.NewAppError(fiber.StatusConflict, "Invitation already sent", nil, err)
	case errors.Is(err, usecase.ErrInvitationNotPending):
		return middleware.NewAppError(fiber.StatusConflict, "Invitation already answered", nil, err)
	case errors.Is(err, usecase.ErrNotTeamMember),
		errors.Is(err, usecase.ErrNotInvitationInvitee),
		errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
