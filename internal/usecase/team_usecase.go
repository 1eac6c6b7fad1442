package usecase

import (
	"context"
	"errors"
	"strings"

	"quicksync/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrTeamNotFound         = errors.New("team not found")
	ErrTeamFull             = errors.New("team is full")
	ErrNotTeamMember        = errors.New("not a team member")
	ErrAlreadyTeamMember    = errors.New("already a team member")
	ErrInvitationExists     = errors.New("invitation already sent")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotPending = errors.New("invitation already answered")
	ErrNotInvitationInvitee = errors.New("not the invitation invitee")
	ErrForbidden            = errors.New("forbidden")
)

const defaultTeamMaxSize = 4

type CreateTeamInput struct {
	Name           string
	Description    string
	MaxSize        int
	RequiredSkills []string
	EventTags      []string
}

type UpdateTeamInput struct {
	Name           string
	Description    string
	MaxSize        int
	RequiredSkills []string
	EventTags      []string
	IsOpen         bool
}

type SendInvitationInput struct {
	InviteeID uuid.UUID
	Message   string
}

// InvitationNotifier pushes an event to the invitee when an
// invitation is created; delivery is best effort.
type InvitationNotifier interface {
	NotifyInvitation(inv repository.Invitation)
}

type TeamUsecase interface {
	CreateTeam(ctx context.Context, creatorID uuid.UUID, in CreateTeamInput) (repository.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (repository.Team, []repository.TeamMember, error)
	UpdateTeam(ctx context.Context, userID, teamID uuid.UUID, in UpdateTeamInput) (repository.Team, error)
	DeleteTeam(ctx context.Context, userID, teamID uuid.UUID) error
	ListOpenTeams(ctx context.Context) ([]repository.Team, error)
	MyTeams(ctx context.Context, userID uuid.UUID) ([]repository.Team, error)
	SendInvitation(ctx context.Context, inviterID, teamID uuid.UUID, in SendInvitationInput) (repository.Invitation, error)
	MyInvitations(ctx context.Context, userID uuid.UUID) ([]repository.Invitation, error)
	RespondInvitation(ctx context.Context, userID, invitationID uuid.UUID, accept bool) (repository.Invitation, error)
}

type TeamService struct {
	teams       repository.TeamRepository
	invitations repository.InvitationRepository
	users       repository.UserRepository
	notifier    InvitationNotifier
}

func NewTeamUsecase(
	teams repository.TeamRepository,
	invitations repository.InvitationRepository,
	users repository.UserRepository,
	notifier InvitationNotifier,
) *TeamService {
	return &TeamService{teams: teams, invitations: invitations, users: users, notifier: notifier}
}

func (s *TeamService) CreateTeam(ctx context.Context, creatorID uuid.UUID, in CreateTeamInput) (repository.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.Team{}, ErrInvalidInput
	}
	maxSize := in.MaxSize
	if maxSize == 0 {
		maxSize = defaultTeamMaxSize
	}
	if maxSize < 1 {
		return repository.Team{}, ErrInvalidInput
	}

	t := repository.Team{
		ID:             uuid.New(),
		Name:           name,
		Description:    strings.TrimSpace(in.Description),
		CreatorID:      creatorID,
		MaxSize:        maxSize,
		RequiredSkills: cleanTags(in.RequiredSkills),
		EventTags:      cleanTags(in.EventTags),
		IsOpen:         true,
	}
	created, err := s.teams.Create(ctx, t, "Team Leader")
	if err != nil {
		return repository.Team{}, ErrInternal
	}
	return created, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (repository.Team, []repository.TeamMember, error) {
	t, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return repository.Team{}, nil, ErrTeamNotFound
		}
		return repository.Team{}, nil, ErrInternal
	}
	members, err := s.teams.ListMembers(ctx, id)
	if err != nil {
		return repository.Team{}, nil, ErrInternal
	}
	return t, members, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, userID, teamID uuid.UUID, in UpdateTeamInput) (repository.Team, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return repository.Team{}, ErrTeamNotFound
		}
		return repository.Team{}, ErrInternal
	}
	if t.CreatorID != userID {
		return repository.Team{}, ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.MaxSize < 1 || in.MaxSize < t.MemberCount {
		return repository.Team{}, ErrInvalidInput
	}

	t.Name = name
	t.Description = strings.TrimSpace(in.Description)
	t.MaxSize = in.MaxSize
	t.RequiredSkills = cleanTags(in.RequiredSkills)
	t.EventTags = cleanTags(in.EventTags)
	t.IsOpen = in.IsOpen

	updated, err := s.teams.Update(ctx, t)
	if err != nil {
		return repository.Team{}, ErrInternal
	}
	return updated, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return ErrInternal
	}
	if t.CreatorID != userID {
		return ErrForbidden
	}
	if err := s.teams.Delete(ctx, teamID); err != nil {
		return ErrInternal
	}
	return nil
}

func (s *TeamService) ListOpenTeams(ctx context.Context) ([]repository.Team, error) {
	teams, err := s.teams.ListOpen(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return teams, nil
}

func (s *TeamService) MyTeams(ctx context.Context, userID uuid.UUID) ([]repository.Team, error) {
	teams, err := s.teams.ListByMember(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return teams, nil
}

func (s *TeamService) SendInvitation(ctx context.Context, inviterID, teamID uuid.UUID, in SendInvitationInput) (repository.Invitation, error) {
	if in.InviteeID == uuid.Nil {
		return repository.Invitation{}, ErrInvalidInput
	}

	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return repository.Invitation{}, ErrTeamNotFound
		}
		return repository.Invitation{}, ErrInternal
	}

	isMember, err := s.teams.IsMember(ctx, teamID, inviterID)
	if err != nil {
		return repository.Invitation{}, ErrInternal
	}
	if !isMember {
		return repository.Invitation{}, ErrNotTeamMember
	}

	if t.MemberCount >= t.MaxSize {
		return repository.Invitation{}, ErrTeamFull
	}

	if _, err := s.users.GetByID(ctx, in.InviteeID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.Invitation{}, ErrUserNotFound
		}
		return repository.Invitation{}, ErrInternal
	}

	inviteeMember, err := s.teams.IsMember(ctx, teamID, in.InviteeID)
	if err != nil {
		return repository.Invitation{}, ErrInternal
	}
	if inviteeMember {
		return repository.Invitation{}, ErrAlreadyTeamMember
	}

	exists, err := s.invitations.ExistsForTeamAndInvitee(ctx, teamID, in.InviteeID)
	if err != nil {
		return repository.Invitation{}, ErrInternal
	}
	if exists {
		return repository.Invitation{}, ErrInvitationExists
	}

	inv, err := s.invitations.Create(ctx, repository.Invitation{
		ID:        uuid.New(),
		TeamID:    teamID,
		InviterID: inviterID,
		InviteeID: in.InviteeID,
		Message:   strings.TrimSpace(in.Message),
	})
	if err != nil {
		return repository.Invitation{}, ErrInternal
	}

	if s.notifier != nil {
		s.notifier.NotifyInvitation(inv)
	}
	return inv, nil
}

func (s *TeamService) MyInvitations(ctx context.Context, userID uuid.UUID) ([]repository.Invitation, error) {
	invs, err := s.invitations.ListByInvitee(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return invs, nil
}

func (s *TeamService) RespondInvitation(ctx context.Context, userID, invitationID uuid.UUID, accept bool) (repository.Invitation, error) {
	inv, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return repository.Invitation{}, ErrInvitationNotFound
		}
		return repository.Invitation{}, ErrInternal
	}
	if inv.InviteeID != userID {
		return repository.Invitation{}, ErrNotInvitationInvitee
	}
	if inv.Status != repository.InvitationPending {
		return repository.Invitation{}, ErrInvitationNotPending
	}

	if !accept {
		declined, err := s.invitations.Decline(ctx, invitationID)
		if err != nil {
			return repository.Invitation{}, ErrInternal
		}
		return declined, nil
	}

	// Capacity is rechecked at accept time: the team may have filled
	// since the invitation was sent.
	t, err := s.teams.GetByID(ctx, inv.TeamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return repository.Invitation{}, ErrTeamNotFound
		}
		return repository.Invitation{}, ErrInternal
	}
	if t.MemberCount >= t.MaxSize {
		return repository.Invitation{}, ErrTeamFull
	}

	accepted, err := s.invitations.Accept(ctx, invitationID, "Member")
	if err != nil {
		return repository.Invitation{}, ErrInternal
	}
	return accepted, nil
}
