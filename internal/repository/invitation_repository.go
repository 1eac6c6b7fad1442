package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"quicksync/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrInvitationNotFound = errors.New("invitation not found")

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

type Invitation struct {
	ID          uuid.UUID
	TeamID      uuid.UUID
	TeamName    string
	InviterID   uuid.UUID
	InviteeID   uuid.UUID
	Message     string
	Status      string
	CreatedAt   time.Time
	RespondedAt *time.Time
}

type InvitationRepository interface {
	Create(ctx context.Context, inv Invitation) (Invitation, error)
	GetByID(ctx context.Context, id uuid.UUID) (Invitation, error)
	ExistsForTeamAndInvitee(ctx context.Context, teamID, inviteeID uuid.UUID) (bool, error)
	ListByInvitee(ctx context.Context, inviteeID uuid.UUID) ([]Invitation, error)
	Accept(ctx context.Context, id uuid.UUID, role string) (Invitation, error)
	Decline(ctx context.Context, id uuid.UUID) (Invitation, error)
}

type PostgresInvitationRepository struct {
	db database.DB
}

func NewPostgresInvitationRepository(db database.DB) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{db: db}
}

const invitationColumns = `i.id, i.team_id, t.name, i.inviter_id, i.invitee_id,
	COALESCE(i.message, ''), i.status, i.created_at, i.responded_at`

func (r *PostgresInvitationRepository) Create(ctx context.Context, inv Invitation) (Invitation, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO team_invitations (id, team_id, inviter_id, invitee_id, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.TeamID, inv.InviterID, inv.InviteeID, inv.Message, InvitationPending,
	)
	if err != nil {
		return Invitation{}, err
	}
	return r.GetByID(ctx, inv.ID)
}

func (r *PostgresInvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (Invitation, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+invitationColumns+`
		 FROM team_invitations i
		 JOIN teams t ON t.id = i.team_id
		 WHERE i.id = $1`,
		id,
	)
	inv, err := scanInvitation(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Invitation{}, ErrInvitationNotFound
		}
		return Invitation{}, err
	}
	return inv, nil
}

func (r *PostgresInvitationRepository) ExistsForTeamAndInvitee(ctx context.Context, teamID, inviteeID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM team_invitations WHERE team_id = $1 AND invitee_id = $2)`,
		teamID, inviteeID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresInvitationRepository) ListByInvitee(ctx context.Context, inviteeID uuid.UUID) ([]Invitation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+invitationColumns+`
		 FROM team_invitations i
		 JOIN teams t ON t.id = i.team_id
		 WHERE i.invitee_id = $1
		 ORDER BY i.created_at DESC`,
		inviteeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Accept marks the invitation accepted and inserts the membership in
// one transaction, so a crash cannot leave an accepted invitation
// without its membership row.
func (r *PostgresInvitationRepository) Accept(ctx context.Context, id uuid.UUID, role string) (Invitation, error) {
	inv, err := r.GetByID(ctx, id)
	if err != nil {
		return Invitation{}, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Invitation{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`UPDATE team_invitations SET status = $1, responded_at = now() WHERE id = $2`,
		InvitationAccepted, id,
	)
	if err != nil {
		return Invitation{}, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO team_memberships (user_id, team_id, role, is_leader) VALUES ($1, $2, $3, FALSE)`,
		inv.InviteeID, inv.TeamID, role,
	)
	if err != nil {
		return Invitation{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Invitation{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresInvitationRepository) Decline(ctx context.Context, id uuid.UUID) (Invitation, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE team_invitations SET status = $1, responded_at = now() WHERE id = $2`,
		InvitationDeclined, id,
	)
	if err != nil {
		return Invitation{}, err
	}
	if rowsAffected == 0 {
		return Invitation{}, ErrInvitationNotFound
	}
	return r.GetByID(ctx, id)
}

func scanInvitation(s scanner) (Invitation, error) {
	var inv Invitation
	if err := s.Scan(
		&inv.ID, &inv.TeamID, &inv.TeamName, &inv.InviterID, &inv.InviteeID,
		&inv.Message, &inv.Status, &inv.CreatedAt, &inv.RespondedAt,
	); err != nil {
		return Invitation{}, err
	}
	return inv, nil
}
