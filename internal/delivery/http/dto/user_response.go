package dto

import (
	"time"

	"github.com/google/uuid"

	"quicksync/internal/repository"
)

type UserProfileResponse struct {
	ID           uuid.UUID           `json:"id"`
	Email        string              `json:"email"`
	FullName     string              `json:"full_name"`
	Bio          string              `json:"bio"`
	Skills       []string            `json:"skills"`
	Interests    []string            `json:"interests"`
	Availability map[string][]string `json:"availability"`
	EventTags    []string            `json:"event_tags"`
	CreatedAt    time.Time           `json:"created_at"`
}

func NewUserProfileResponse(u repository.User) UserProfileResponse {
	return UserProfileResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Bio:          u.Bio,
		Skills:       emptyIfNil(u.Skills),
		Interests:    emptyIfNil(u.Interests),
		Availability: u.Availability,
		EventTags:    emptyIfNil(u.EventTags),
		CreatedAt:    u.CreatedAt,
	}
}

func emptyIfNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
