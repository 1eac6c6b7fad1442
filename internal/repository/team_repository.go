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

var ErrTeamNotFound = errors.New("team not found")

type Team struct {
	ID             uuid.UUID
	Name           string
	Description    string
	CreatorID      uuid.UUID
	MaxSize        int
	RequiredSkills []string
	EventTags      []string
	IsOpen         bool
	MemberCount    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type TeamMember struct {
	UserID   uuid.UUID
	TeamID   uuid.UUID
	Role     string
	IsLeader bool
	JoinedAt time.Time
}

type TeamRepository interface {
	Create(ctx context.Context, t Team, creatorRole string) (Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (Team, error)
	Update(ctx context.Context, t Team) (Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListOpen(ctx context.Context) ([]Team, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]Team, error)
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]TeamMember, error)
}

type PostgresTeamRepository struct {
	db database.DB
}

func NewPostgresTeamRepository(db database.DB) *PostgresTeamRepository {
	return &PostgresTeamRepository{db: db}
}

const teamColumns = `t.id, t.name, COALESCE(t.description, ''), t.creator_id, t.max_size,
	COALESCE(t.required_skills, '{}'), COALESCE(t.event_tags, '{}'), t.is_open,
	(SELECT COUNT(*) FROM team_memberships m WHERE m.team_id = t.id),
	t.created_at, t.updated_at`

// Create inserts the team and its creator membership atomically; a
// team always has its creator as leader from the first row.
func (r *PostgresTeamRepository) Create(ctx context.Context, t Team, creatorRole string) (Team, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Team{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO teams (id, name, description, creator_id, max_size, required_skills, event_tags, is_open)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Name, t.Description, t.CreatorID, t.MaxSize,
		tagsOrEmpty(t.RequiredSkills), tagsOrEmpty(t.EventTags), t.IsOpen,
	)
	if err != nil {
		return Team{}, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO team_memberships (user_id, team_id, role, is_leader) VALUES ($1, $2, $3, TRUE)`,
		t.CreatorID, t.ID, creatorRole,
	)
	if err != nil {
		return Team{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Team{}, err
	}
	return r.GetByID(ctx, t.ID)
}

func (r *PostgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (Team, error) {
	row := r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams t WHERE t.id = $1`, id)
	t, err := scanTeam(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Team{}, ErrTeamNotFound
		}
		return Team{}, err
	}
	return t, nil
}

func (r *PostgresTeamRepository) Update(ctx context.Context, t Team) (Team, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE teams
		 SET name = $1, description = $2, max_size = $3, required_skills = $4, event_tags = $5, is_open = $6, updated_at = now()
		 WHERE id = $7`,
		t.Name, t.Description, t.MaxSize, tagsOrEmpty(t.RequiredSkills), tagsOrEmpty(t.EventTags), t.IsOpen, t.ID,
	)
	if err != nil {
		return Team{}, err
	}
	if rowsAffected == 0 {
		return Team{}, ErrTeamNotFound
	}
	return r.GetByID(ctx, t.ID)
}

func (r *PostgresTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *PostgresTeamRepository) ListOpen(ctx context.Context) ([]Team, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM teams t WHERE t.is_open ORDER BY t.created_at DESC`)
}

func (r *PostgresTeamRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]Team, error) {
	return r.list(ctx,
		`SELECT `+teamColumns+`
		 FROM teams t
		 JOIN team_memberships m ON m.team_id = t.id
		 WHERE m.user_id = $1
		 ORDER BY t.created_at DESC`,
		userID,
	)
}

func (r *PostgresTeamRepository) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM team_memberships WHERE team_id = $1 AND user_id = $2)`,
		teamID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresTeamRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]TeamMember, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, team_id, COALESCE(role, ''), is_leader, joined_at
		 FROM team_memberships
		 WHERE team_id = $1
		 ORDER BY joined_at ASC`,
		teamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TeamMember, 0)
	for rows.Next() {
		var m TeamMember
		if err := rows.Scan(&m.UserID, &m.TeamID, &m.Role, &m.IsLeader, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTeamRepository) list(ctx context.Context, query string, args ...any) ([]Team, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTeam(s scanner) (Team, error) {
	var t Team
	if err := s.Scan(
		&t.ID, &t.Name, &t.Description, &t.CreatorID, &t.MaxSize,
		&t.RequiredSkills, &t.EventTags, &t.IsOpen, &t.MemberCount,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return Team{}, err
	}
	return t, nil
}
