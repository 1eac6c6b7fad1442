package dto

import (
	"time"

	"github.com/google/uuid"

	"quicksync/internal/repository"
)

type TeamResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatorID      uuid.UUID `json:"creator_id"`
	MaxSize        int       `json:"max_size"`
	MemberCount    int       `json:"member_count"`
	IsFull         bool      `json:"is_full"`
	RequiredSkills []string  `json:"required_skills"`
	EventTags      []string  `json:"event_tags"`
	IsOpen         bool      `json:"is_open"`
	CreatedAt      time.Time `json:"created_at"`
}

type TeamMemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Role     string    `json:"role"`
	IsLeader bool      `json:"is_leader"`
	JoinedAt time.Time `json:"joined_at"`
}

type TeamDetailResponse struct {
	TeamResponse
	Members []TeamMemberResponse `json:"members"`
}

type InvitationResponse struct {
	ID          uuid.UUID  `json:"id"`
	TeamID      uuid.UUID  `json:"team_id"`
	TeamName    string     `json:"team_name"`
	InviterID   uuid.UUID  `json:"inviter_id"`
	InviteeID   uuid.UUID  `json:"invitee_id"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at"`
}

func NewTeamResponse(t repository.Team) TeamResponse {
	return TeamResponse{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		CreatorID:      t.CreatorID,
		MaxSize:        t.MaxSize,
		MemberCount:    t.MemberCount,
		IsFull:         t.MemberCount >= t.MaxSize,
		RequiredSkills: emptyIfNil(t.RequiredSkills),
		EventTags:      emptyIfNil(t.EventTags),
		IsOpen:         t.IsOpen,
		CreatedAt:      t.CreatedAt,
	}
}

func NewInvitationResponse(inv repository.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:          inv.ID,
		TeamID:      inv.TeamID,
		TeamName:    inv.TeamName,
		InviterID:   inv.InviterID,
		InviteeID:   inv.InviteeID,
		Message:     inv.Message,
		Status:      inv.Status,
		CreatedAt:   inv.CreatedAt,
		RespondedAt: inv.RespondedAt,
	}
}
