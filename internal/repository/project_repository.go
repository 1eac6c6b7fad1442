package repository

import (
	"context"
	"time"

	"quicksync/internal/database"

	"github.com/google/uuid"
)

type ProjectSuggestion struct {
	ID                uuid.UUID
	Title             string
	Description       string
	RequiredSkills    []string
	DifficultyLevel   string
	EstimatedDuration string
	TechStack         []string
	CreatedAt         time.Time
}

type ProjectRepository interface {
	ListAll(ctx context.Context) ([]ProjectSuggestion, error)
	CreateIfAbsent(ctx context.Context, p ProjectSuggestion) (bool, error)
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) ListAll(ctx context.Context) ([]ProjectSuggestion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), COALESCE(required_skills, '{}'),
		        COALESCE(difficulty_level, 'intermediate'), COALESCE(estimated_duration, ''),
		        COALESCE(tech_stack, '{}'), created_at
		 FROM project_suggestions
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProjectSuggestion, 0)
	for rows.Next() {
		var p ProjectSuggestion
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.RequiredSkills,
			&p.DifficultyLevel, &p.EstimatedDuration, &p.TechStack, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateIfAbsent inserts the suggestion unless one with the same title
// exists. Returns whether a row was created; used by seeding.
func (r *PostgresProjectRepository) CreateIfAbsent(ctx context.Context, p ProjectSuggestion) (bool, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`INSERT INTO project_suggestions (id, title, description, required_skills, difficulty_level, estimated_duration, tech_stack)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (title) DO NOTHING`,
		p.ID, p.Title, p.Description, tagsOrEmpty(p.RequiredSkills),
		p.DifficultyLevel, p.EstimatedDuration, tagsOrEmpty(p.TechStack),
	)
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
