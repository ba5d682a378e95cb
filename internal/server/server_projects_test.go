package server

import (
	"net/http"
	"testing"

	"codeforge/internal/app"
	"codeforge/pkg/domain"
)

func TestProjectCRUDScopedToOwner(t *testing.T) {
	srv := newTestServer(t, app.Config{})
	_, tokenA := signupUser(t, srv.URL, "Ada", "ada@example.com", "secret1")
	_, tokenB := signupUser(t, srv.URL, "Bob", "bob@example.com", "secret1")

	// Ada creates two projects.
	resp := postJSON(t, srv.URL+"/api/projects", tokenA, app.ProjectInput{
		Name:     "fizzbuzz",
		Language: "go",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expected 201, got %d", resp.StatusCode)
	}
	var first domain.Project
	decodeBody(t, resp, &first)
	if first.Tags == nil {
		t.Fatalf("create should default tags to an empty list")
	}

	resp = postJSON(t, srv.URL+"/api/projects", tokenA, app.ProjectInput{
		Name:        "todo api",
		Description: "REST backend",
		Language:    "go",
		Tags:        []string{"api"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expected 201, got %d", resp.StatusCode)
	}
	var second domain.Project
	decodeBody(t, resp, &second)

	// Ada sees both. Bob sees none.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/projects", tokenA, nil)
	var listA []domain.Project
	decodeBody(t, resp, &listA)
	if len(listA) != 2 {
		t.Fatalf("owner list expected 2 projects, got %d", len(listA))
	}
	seen := map[string]bool{listA[0].ID: true, listA[1].ID: true}
	if !seen[first.ID] || !seen[second.ID] {
		t.Fatalf("list missing created projects: %+v", listA)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/projects", tokenB, nil)
	var listB []domain.Project
	decodeBody(t, resp, &listB)
	if len(listB) != 0 {
		t.Fatalf("other user list expected 0 projects, got %d", len(listB))
	}

	// Bob cannot see, update, or delete Ada's project; the responses do not
	// reveal that the id exists.
	name := "stolen"
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/projects/"+first.ID, tokenB, app.ProjectUpdate{Name: &name})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign update expected 404, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/projects/"+first.ID, tokenB, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign delete expected 404, got %d", resp.StatusCode)
	}

	// Ada's partial update touches only the named fields.
	desc := "classic interview kata"
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/projects/"+first.ID, tokenA, app.ProjectUpdate{Description: &desc})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update expected 200, got %d", resp.StatusCode)
	}
	var updated domain.Project
	decodeBody(t, resp, &updated)
	if updated.Description != desc || updated.Name != "fizzbuzz" {
		t.Fatalf("partial update changed the wrong fields: %+v", updated)
	}

	// Renaming to an empty name is rejected.
	empty := "   "
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/projects/"+first.ID, tokenA, app.ProjectUpdate{Name: &empty})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty rename expected 400, got %d", resp.StatusCode)
	}

	// Delete succeeds once, then reports not found.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/projects/"+first.ID, tokenA, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete expected 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/projects/"+first.ID, tokenA, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("repeated delete expected 404, got %d", resp.StatusCode)
	}
}

func TestProjectSearch(t *testing.T) {
	srv := newTestServer(t, app.Config{})
	_, tokenA := signupUser(t, srv.URL, "Ada", "ada@example.com", "secret1")
	_, tokenB := signupUser(t, srv.URL, "Bob", "bob@example.com", "secret1")

	for _, input := range []app.ProjectInput{
		{Name: "Chat Server", Description: "websocket chat", Language: "go"},
		{Name: "blog", Description: "static site", Language: "python"},
	} {
		resp := postJSON(t, srv.URL+"/api/projects", tokenA, input)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create expected 201, got %d", resp.StatusCode)
		}
	}
	resp := postJSON(t, srv.URL+"/api/projects", tokenB, app.ProjectInput{
		Name: "chat clone", Language: "go",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expected 201, got %d", resp.StatusCode)
	}

	// The match is case-insensitive and scoped to the caller.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/projects/search?query=CHAT", tokenA, nil)
	var results []domain.Project
	decodeBody(t, resp, &results)
	if len(results) != 1 || results[0].Name != "Chat Server" {
		t.Fatalf("expected only the owner's chat project, got %+v", results)
	}

	// Description and language fields match too.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/projects/search?query=python", tokenA, nil)
	decodeBody(t, resp, &results)
	if len(results) != 1 || results[0].Name != "blog" {
		t.Fatalf("expected language match on blog, got %+v", results)
	}

	// An empty query returns everything the caller owns.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/projects/search", tokenA, nil)
	decodeBody(t, resp, &results)
	if len(results) != 2 {
		t.Fatalf("empty query expected 2 projects, got %d", len(results))
	}
}
