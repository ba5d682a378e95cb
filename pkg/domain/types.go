package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Code        string    `json:"code"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GenerationRequest is the transient input of the generate endpoint.
// It is never persisted.
type GenerationRequest struct {
	Prompt      string `json:"prompt"`
	Language    string `json:"language"`
	ProjectType string `json:"projectType"`
}

// ProjectFile is one generated file inside a manifest.
type ProjectFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ProjectManifest is the structured output of the generation service,
// whether it came from an LLM provider or from the local template.
type ProjectManifest struct {
	ProjectName  string        `json:"projectName"`
	Description  string        `json:"description"`
	Files        []ProjectFile `json:"files"`
	Instructions string        `json:"instructions"`
}
