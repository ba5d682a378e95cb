package store

import (
	"sort"
	"strings"
	"sync"

	"codeforge/pkg/domain"
)

// MemoryStore keeps users and projects in-process. It backs the mock/local
// configuration only; everything is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]domain.User    // key: user ID
	email    map[string]string         // email -> user ID
	projects map[string]domain.Project // key: project ID
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]domain.User),
		email:    make(map[string]string),
		projects: make(map[string]domain.Project),
	}
}

// SaveUser registers or replaces a user.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

// HasUserEmail checks if an email is already registered.
func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.email[email]; ok {
		u, exists := m.users[id]
		return u, exists, nil
	}
	return domain.User{}, false, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// SaveProject stores or replaces a project record.
func (m *MemoryStore) SaveProject(p domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p
	return nil
}

// GetProject retrieves a project by ID.
func (m *MemoryStore) GetProject(id string) (domain.Project, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	return p, ok, nil
}

// ListProjectsByOwner returns the owner's projects, most recently updated first.
func (m *MemoryStore) ListProjectsByOwner(ownerID string) ([]domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Project, 0)
	for _, p := range m.projects {
		if p.OwnerID == ownerID {
			res = append(res, p)
		}
	}
	sortByUpdatedDesc(res)
	return res, nil
}

// SearchProjectsByOwner filters the owner's projects by a case-insensitive
// substring match over name, description, and language.
func (m *MemoryStore) SearchProjectsByOwner(ownerID, query string) ([]domain.Project, error) {
	needle := strings.ToLower(query)
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Project, 0)
	for _, p := range m.projects {
		if p.OwnerID != ownerID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Language), needle) {
			res = append(res, p)
		}
	}
	sortByUpdatedDesc(res)
	return res, nil
}

// DeleteProject removes a project.
func (m *MemoryStore) DeleteProject(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects, id)
	return nil
}

func sortByUpdatedDesc(projects []domain.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
}
