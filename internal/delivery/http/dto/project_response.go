package dto

import (
	"github.com/google/uuid"

	"quicksync/internal/repository"
)

type ProjectSuggestionResponse struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	RequiredSkills    []string  `json:"required_skills"`
	DifficultyLevel   string    `json:"difficulty_level"`
	EstimatedDuration string    `json:"estimated_duration"`
	TechStack         []string  `json:"tech_stack"`
}

func NewProjectSuggestionResponse(p repository.ProjectSuggestion) ProjectSuggestionResponse {
	return ProjectSuggestionResponse{
		ID:                p.ID,
		Title:             p.Title,
		Description:       p.Description,
		RequiredSkills:    emptyIfNil(p.RequiredSkills),
		DifficultyLevel:   p.DifficultyLevel,
		EstimatedDuration: p.EstimatedDuration,
		TechStack:         emptyIfNil(p.TechStack),
	}
}
