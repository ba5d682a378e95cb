package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeforge/pkg/domain"
)

// ProjectInput carries the caller-settable fields of a new project.
type ProjectInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Code        string   `json:"code"`
	Tags        []string `json:"tags"`
}

// ProjectUpdate carries a partial update; nil fields keep their prior value.
type ProjectUpdate struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Language    *string   `json:"language"`
	Code        *string   `json:"code"`
	Tags        *[]string `json:"tags"`
}

// ListProjects returns the user's projects, most recently updated first.
func (a *App) ListProjects(user domain.User) ([]domain.Project, error) {
	projects, err := a.store.ListProjectsByOwner(user.ID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject persists a new project owned by the user.
func (a *App) CreateProject(user domain.User, input ProjectInput) (domain.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Project{}, ErrProjectNameRequired
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	project := domain.Project{
		ID:          uuid.NewString(),
		OwnerID:     user.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Language:    input.Language,
		Code:        input.Code,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.SaveProject(project); err != nil {
		return domain.Project{}, fmt.Errorf("save project: %w", err)
	}
	return project, nil
}

// UpdateProject applies a partial update to a project the user owns.
func (a *App) UpdateProject(user domain.User, id string, update ProjectUpdate) (domain.Project, error) {
	project, err := a.ownedProject(user, id)
	if err != nil {
		return domain.Project{}, err
	}
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return domain.Project{}, ErrProjectNameRequired
		}
		project.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.Language != nil {
		project.Language = *update.Language
	}
	if update.Code != nil {
		project.Code = *update.Code
	}
	if update.Tags != nil {
		tags := *update.Tags
		if tags == nil {
			tags = []string{}
		}
		project.Tags = tags
	}
	project.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveProject(project); err != nil {
		return domain.Project{}, fmt.Errorf("save project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project the user owns. Deleting an already-deleted
// project reports not-found rather than succeeding.
func (a *App) DeleteProject(user domain.User, id string) error {
	if _, err := a.ownedProject(user, id); err != nil {
		return err
	}
	if err := a.store.DeleteProject(id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// SearchProjects filters the user's projects by a case-insensitive substring
// over name, description, and language.
func (a *App) SearchProjects(user domain.User, query string) ([]domain.Project, error) {
	projects, err := a.store.SearchProjectsByOwner(user.ID, query)
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	return projects, nil
}

// ownedProject fetches a project and enforces ownership. Foreign-owned
// projects are reported as not found so ids cannot be probed.
func (a *App) ownedProject(user domain.User, id string) (domain.Project, error) {
	project, ok, err := a.store.GetProject(id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("fetch project: %w", err)
	}
	if !ok || project.OwnerID != user.ID {
		return domain.Project{}, ErrProjectNotFound
	}
	return project, nil
}
