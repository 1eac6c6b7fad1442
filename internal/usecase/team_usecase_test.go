package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"quicksync/internal/repository"

	"github.com/google/uuid"
)

type memTeamRepo struct {
	teams   map[uuid.UUID]repository.Team
	members map[uuid.UUID][]repository.TeamMember
}

func newMemTeamRepo() *memTeamRepo {
	return &memTeamRepo{
		teams:   make(map[uuid.UUID]repository.Team),
		members: make(map[uuid.UUID][]repository.TeamMember),
	}
}

func (m *memTeamRepo) Create(_ context.Context, t repository.Team, creatorRole string) (repository.Team, error) {
	t.CreatedAt = time.Now().UTC()
	m.teams[t.ID] = t
	m.members[t.ID] = []repository.TeamMember{{
		UserID: t.CreatorID, TeamID: t.ID, Role: creatorRole, IsLeader: true,
	}}
	return m.withCount(t), nil
}

func (m *memTeamRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Team, error) {
	t, ok := m.teams[id]
	if !ok {
		return repository.Team{}, repository.ErrTeamNotFound
	}
	return m.withCount(t), nil
}

func (m *memTeamRepo) Update(_ context.Context, t repository.Team) (repository.Team, error) {
	if _, ok := m.teams[t.ID]; !ok {
		return repository.Team{}, repository.ErrTeamNotFound
	}
	m.teams[t.ID] = t
	return m.withCount(t), nil
}

func (m *memTeamRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.teams, id)
	delete(m.members, id)
	return nil
}

func (m *memTeamRepo) ListOpen(context.Context) ([]repository.Team, error) {
	out := make([]repository.Team, 0)
	for _, t := range m.teams {
		if t.IsOpen {
			out = append(out, m.withCount(t))
		}
	}
	return out, nil
}

func (m *memTeamRepo) ListByMember(_ context.Context, userID uuid.UUID) ([]repository.Team, error) {
	out := make([]repository.Team, 0)
	for id, members := range m.members {
		for _, mem := range members {
			if mem.UserID == userID {
				out = append(out, m.withCount(m.teams[id]))
			}
		}
	}
	return out, nil
}

func (m *memTeamRepo) IsMember(_ context.Context, teamID, userID uuid.UUID) (bool, error) {
	for _, mem := range m.members[teamID] {
		if mem.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTeamRepo) ListMembers(_ context.Context, teamID uuid.UUID) ([]repository.TeamMember, error) {
	return m.members[teamID], nil
}

func (m *memTeamRepo) withCount(t repository.Team) repository.Team {
	t.MemberCount = len(m.members[t.ID])
	return t
}

type memInvitationRepo struct {
	teams       *memTeamRepo
	invitations map[uuid.UUID]repository.Invitation
}

func newMemInvitationRepo(teams *memTeamRepo) *memInvitationRepo {
	return &memInvitationRepo{teams: teams, invitations: make(map[uuid.UUID]repository.Invitation)}
}

func (m *memInvitationRepo) Create(_ context.Context, inv repository.Invitation) (repository.Invitation, error) {
	inv.Status = repository.InvitationPending
	inv.CreatedAt = time.Now().UTC()
	if t, ok := m.teams.teams[inv.TeamID]; ok {
		inv.TeamName = t.Name
	}
	m.invitations[inv.ID] = inv
	return inv, nil
}

func (m *memInvitationRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Invitation, error) {
	inv, ok := m.invitations[id]
	if !ok {
		return repository.Invitation{}, repository.ErrInvitationNotFound
	}
	return inv, nil
}

func (m *memInvitationRepo) ExistsForTeamAndInvitee(_ context.Context, teamID, inviteeID uuid.UUID) (bool, error) {
	for _, inv := range m.invitations {
		if inv.TeamID == teamID && inv.InviteeID == inviteeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memInvitationRepo) ListByInvitee(_ context.Context, inviteeID uuid.UUID) ([]repository.Invitation, error) {
	out := make([]repository.Invitation, 0)
	for _, inv := range m.invitations {
		if inv.InviteeID == inviteeID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvitationRepo) Accept(_ context.Context, id uuid.UUID, role string) (repository.Invitation, error) {
	inv, ok := m.invitations[id]
	if !ok {
		return repository.Invitation{}, repository.ErrInvitationNotFound
	}
	now := time.Now().UTC()
	inv.Status = repository.InvitationAccepted
	inv.RespondedAt = &now
	m.invitations[id] = inv
	m.teams.members[inv.TeamID] = append(m.teams.members[inv.TeamID], repository.TeamMember{
		UserID: inv.InviteeID, TeamID: inv.TeamID, Role: role, JoinedAt: now,
	})
	return inv, nil
}

func (m *memInvitationRepo) Decline(_ context.Context, id uuid.UUID) (repository.Invitation, error) {
	inv, ok := m.invitations[id]
	if !ok {
		return repository.Invitation{}, repository.ErrInvitationNotFound
	}
	now := time.Now().UTC()
	inv.Status = repository.InvitationDeclined
	inv.RespondedAt = &now
	m.invitations[id] = inv
	return inv, nil
}

type mockNotifier struct {
	notified []repository.Invitation
}

func (m *mockNotifier) NotifyInvitation(inv repository.Invitation) {
	m.notified = append(m.notified, inv)
}

func newTeamServiceForTest(users []repository.User) (*TeamService, *memTeamRepo, *mockNotifier) {
	teams := newMemTeamRepo()
	notifier := &mockNotifier{}
	svc := NewTeamUsecase(teams, newMemInvitationRepo(teams), &mockUserRepo{users: users}, notifier)
	return svc, teams, notifier
}

func TestTeamService_CreateTeam_Defaults(t *testing.T) {
	creator := uuid.New()
	svc, _, _ := newTeamServiceForTest(nil)

	team, err := svc.CreateTeam(context.Background(), creator, CreateTeamInput{Name: "Code Crusaders"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if team.MaxSize != 4 {
		t.Fatalf("expected default max size 4, got %d", team.MaxSize)
	}
	if !team.IsOpen {
		t.Fatalf("expected new team open")
	}
	if team.MemberCount != 1 {
		t.Fatalf("expected creator membership, got %d members", team.MemberCount)
	}

	_, err = svc.CreateTeam(context.Background(), creator, CreateTeamInput{Name: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestTeamService_SendInvitation_Flow(t *testing.T) {
	creator := uuid.New()
	invitee := repository.User{ID: uuid.New(), FullName: "Jordan"}
	svc, _, notifier := newTeamServiceForTest([]repository.User{invitee})

	team, err := svc.CreateTeam(context.Background(), creator, CreateTeamInput{Name: "Data Dynamos"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	inv, err := svc.SendInvitation(context.Background(), creator, team.ID, SendInvitationInput{
		InviteeID: invitee.ID,
		Message:   "join us",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if inv.Status != repository.InvitationPending {
		t.Fatalf("expected pending, got %s", inv.Status)
	}
	if len(notifier.notified) != 1 || notifier.notified[0].InviteeID != invitee.ID {
		t.Fatalf("expected invitee notified, got %v", notifier.notified)
	}

	_, err = svc.SendInvitation(context.Background(), creator, team.ID, SendInvitationInput{InviteeID: invitee.ID})
	if !errors.Is(err, ErrInvitationExists) {
		t.Fatalf("expected ErrInvitationExists, got %v", err)
	}

	_, err = svc.SendInvitation(context.Background(), invitee.ID, team.ID, SendInvitationInput{InviteeID: uuid.New()})
	if !errors.Is(err, ErrNotTeamMember) {
		t.Fatalf("expected ErrNotTeamMember, got %v", err)
	}
}

func TestTeamService_SendInvitation_FullTeam(t *testing.T) {
	creator := uuid.New()
	invitee := repository.User{ID: uuid.New()}
	svc, _, _ := newTeamServiceForTest([]repository.User{invitee})

	team, err := svc.CreateTeam(context.Background(), creator, CreateTeamInput{Name: "Solo", MaxSize: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err = svc.SendInvitation(context.Background(), creator, team.ID, SendInvitationInput{InviteeID: invitee.ID})
	if !errors.Is(err, ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
}

func TestTeamService_RespondInvitation(t *testing.T) {
	creator := uuid.New()
	invitee := repository.User{ID: uuid.New()}
	svc, teams, _ := newTeamServiceForTest([]repository.User{invitee})

	team, err := svc.CreateTeam(context.Background(), creator, CreateTeamInput{Name: "Pixel Pirates"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	inv, err := svc.SendInvitation(context.Background(), creator, team.ID, SendInvitationInput{InviteeID: invitee.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err = svc.RespondInvitation(context.Background(), uuid.New(), inv.ID, true)
	if !errors.Is(err, ErrNotInvitationInvitee) {
		t.Fatalf("expected ErrNotInvitationInvitee, got %v", err)
	}

	accepted, err := svc.RespondInvitation(context.Background(), invitee.ID, inv.ID, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if accepted.Status != repository.InvitationAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}

	isMember, err := teams.IsMember(context.Background(), team.ID, invitee.ID)
	if err != nil || !isMember {
		t.Fatalf("expected invitee to be a member after accept (err=%v)", err)
	}

	_, err = svc.RespondInvitation(context.Background(), invitee.ID, inv.ID, false)
	if !errors.Is(err, ErrInvitationNotPending) {
		t.Fatalf("expected ErrInvitationNotPending, got %v", err)
	}
}

func TestTeamService_UpdateTeam_Authorization(t *testing.T) {
	creator := uuid.New()
	svc, _, _ := newTeamServiceForTest(nil)

	team, err := svc.CreateTeam(context.Background(), creator, CreateTeamInput{Name: "Tech Titans"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err = svc.UpdateTeam(context.Background(), uuid.New(), team.ID, UpdateTeamInput{Name: "x", MaxSize: 4})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = svc.UpdateTeam(context.Background(), creator, team.ID, UpdateTeamInput{Name: "x", MaxSize: 0})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero max size, got %v", err)
	}

	updated, err := svc.UpdateTeam(context.Background(), creator, team.ID, UpdateTeamInput{
		Name: "Tech Titans v2", MaxSize: 5, IsOpen: false,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Name != "Tech Titans v2" || updated.IsOpen {
		t.Fatalf("unexpected team after update: %+v", updated)
	}

	if err := svc.DeleteTeam(context.Background(), uuid.New(), team.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
	if err := svc.DeleteTeam(context.Background(), creator, team.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, _, err := svc.GetTeam(context.Background(), team.ID); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound after delete, got %v", err)
	}
}
