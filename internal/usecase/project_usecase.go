package usecase

import (
	"context"
	"errors"
	"sort"

	"quicksync/internal/repository"

	"github.com/google/uuid"
)

const projectSuggestionLimit = 10

type ProjectUsecase interface {
	SuggestProjects(ctx context.Context, userID uuid.UUID) ([]repository.ProjectSuggestion, error)
}

type ProjectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewProjectUsecase(projects repository.ProjectRepository, users repository.UserRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users}
}

// SuggestProjects ranks projects by how many of the caller's skills
// appear in the project's required skills. Callers with no skills (or
// anonymous callers, uuid.Nil) get the general list.
func (s *ProjectService) SuggestProjects(ctx context.Context, userID uuid.UUID) ([]repository.ProjectSuggestion, error) {
	all, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	var userSkills map[string]struct{}
	if userID != uuid.Nil {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInternal
		}
		if err == nil && len(u.Skills) > 0 {
			userSkills = make(map[string]struct{}, len(u.Skills))
			for _, sk := range u.Skills {
				userSkills[sk] = struct{}{}
			}
		}
	}

	if len(userSkills) == 0 {
		if len(all) > projectSuggestionLimit {
			all = all[:projectSuggestionLimit]
		}
		return all, nil
	}

	type scoredProject struct {
		project repository.ProjectSuggestion
		overlap int
	}
	matched := make([]scoredProject, 0, len(all))
	for _, p := range all {
		overlap := 0
		for _, sk := range p.RequiredSkills {
			if _, ok := userSkills[sk]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			matched = append(matched, scoredProject{project: p, overlap: overlap})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].overlap > matched[j].overlap })
	if len(matched) > projectSuggestionLimit {
		matched = matched[:projectSuggestionLimit]
	}

	out := make([]repository.ProjectSuggestion, 0, len(matched))
	for _, m := range matched {
		out = append(out, m.project)
	}
	return out, nil
}
