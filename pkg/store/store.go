package store

import "codeforge/pkg/domain"

// Store defines persistence operations for users and projects.
// Implementations must be safe for concurrent use by request handlers.
type Store interface {
	// users
	SaveUser(domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)

	// projects
	SaveProject(domain.Project) error
	GetProject(id string) (domain.Project, bool, error)
	ListProjectsByOwner(ownerID string) ([]domain.Project, error)
	SearchProjectsByOwner(ownerID, query string) ([]domain.Project, error)
	DeleteProject(id string) error
}

// TokenStatus is the outcome of verifying a session token.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenExpired
	TokenInvalid
)

// SessionIssuer issues and verifies stateless session tokens.
// Verify returns a tagged status instead of an error so callers can map
// expired and malformed tokens to distinct HTTP responses.
type SessionIssuer interface {
	NewSession(userID string) (string, error)
	Verify(token string) (userID string, status TokenStatus)
}
