package store

import (
	"testing"
	"time"

	"codeforge/pkg/domain"
)

func TestMemoryStoreUserLookup(t *testing.T) {
	m := NewMemoryStore()
	user := domain.User{ID: "u-1", Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	if err := m.SaveUser(user); err != nil {
		t.Fatalf("save user: %v", err)
	}

	ok, err := m.HasUserEmail("ada@example.com")
	if err != nil || !ok {
		t.Fatalf("expected email to exist, ok=%v err=%v", ok, err)
	}
	got, found, err := m.GetUserByEmail("ada@example.com")
	if err != nil || !found || got.ID != "u-1" {
		t.Fatalf("get by email: found=%v err=%v user=%+v", found, err, got)
	}
	if _, found, _ := m.GetUserByID("missing"); found {
		t.Fatalf("expected missing user to not be found")
	}
}

func TestMemoryStoreListOrderedByUpdatedDesc(t *testing.T) {
	m := NewMemoryStore()
	base := time.Now().UTC()
	for i, id := range []string{"p-old", "p-mid", "p-new"} {
		p := domain.Project{
			ID:        id,
			OwnerID:   "u-1",
			Name:      id,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := m.SaveProject(p); err != nil {
			t.Fatalf("save project: %v", err)
		}
	}

	projects, err := m.ListProjectsByOwner("u-1")
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(projects))
	}
	if projects[0].ID != "p-new" || projects[2].ID != "p-old" {
		t.Fatalf("expected most-recently-updated first, got %s..%s", projects[0].ID, projects[2].ID)
	}
}

func TestMemoryStoreSearchScopedAndCaseInsensitive(t *testing.T) {
	m := NewMemoryStore()
	_ = m.SaveProject(domain.Project{ID: "p-1", OwnerID: "u-1", Name: "Todo App", Language: "JavaScript"})
	_ = m.SaveProject(domain.Project{ID: "p-2", OwnerID: "u-1", Description: "A CLI in Go", Language: "Go"})
	_ = m.SaveProject(domain.Project{ID: "p-3", OwnerID: "u-2", Name: "todo clone"})

	res, err := m.SearchProjectsByOwner("u-1", "TODO")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 1 || res[0].ID != "p-1" {
		t.Fatalf("expected only owner's matching project, got %+v", res)
	}

	res, err = m.SearchProjectsByOwner("u-1", "go")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 1 || res[0].ID != "p-2" {
		t.Fatalf("expected language match, got %+v", res)
	}
}

func TestMemoryStoreDeleteProject(t *testing.T) {
	m := NewMemoryStore()
	_ = m.SaveProject(domain.Project{ID: "p-1", OwnerID: "u-1"})
	if err := m.DeleteProject("p-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := m.GetProject("p-1"); found {
		t.Fatalf("expected project to be gone")
	}
}
