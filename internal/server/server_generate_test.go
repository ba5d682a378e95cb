package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"codeforge/internal/app"
	"codeforge/pkg/ai"
	"codeforge/pkg/domain"
)

type stubGenerator struct {
	name string
	text string
	err  error
}

func (g *stubGenerator) Name() string { return g.name }

func (g *stubGenerator) GenerateText(context.Context, string, string) (string, error) {
	return g.text, g.err
}

func TestGenerateEndpointFallsBackToTemplate(t *testing.T) {
	srv := newTestServer(t, app.Config{})
	_, token := signupUser(t, srv.URL, "Ada", "ada@example.com", "secret1")

	resp := postJSON(t, srv.URL+"/api/generate", token, domain.GenerationRequest{
		Prompt:      "a todo board",
		Language:    "javascript",
		ProjectType: "React App",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate expected 200, got %d", resp.StatusCode)
	}
	var out generateResponse
	decodeBody(t, resp, &out)
	if out.Source != "template" {
		t.Fatalf("no providers configured, expected template source, got %q", out.Source)
	}
	if out.ProjectFiles.ProjectName != "react-app-project" {
		t.Fatalf("unexpected project name %q", out.ProjectFiles.ProjectName)
	}
	if len(out.ProjectFiles.Files) != 6 {
		t.Fatalf("react scaffold expected 6 files, got %d", len(out.ProjectFiles.Files))
	}
	if out.Prompt != "a todo board" || out.Language != "javascript" {
		t.Fatalf("response should echo the request, got %+v", out)
	}
}

func TestGenerateEndpointUsesConfiguredProvider(t *testing.T) {
	srv := newTestServer(t, app.Config{
		Generators: []ai.TextGenerator{&stubGenerator{
			name: "openai",
			text: `{"projectName":"todo","description":"d","files":[{"path":"main.go","content":"package main"}],"instructions":"go run ."}`,
		}},
	})
	_, token := signupUser(t, srv.URL, "Ada", "ada@example.com", "secret1")

	resp := postJSON(t, srv.URL+"/api/generate", token, domain.GenerationRequest{
		Prompt:   "a todo cli",
		Language: "go",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate expected 200, got %d", resp.StatusCode)
	}
	var out generateResponse
	decodeBody(t, resp, &out)
	if out.Source != "openai" {
		t.Fatalf("expected provider source, got %q", out.Source)
	}
	if out.ProjectFiles.ProjectName != "todo" {
		t.Fatalf("unexpected manifest %+v", out.ProjectFiles)
	}
}

func TestGenerateEndpointMasksProviderFailure(t *testing.T) {
	srv := newTestServer(t, app.Config{
		Generators: []ai.TextGenerator{&stubGenerator{
			name: "openai",
			err:  errors.New("upstream 500"),
		}},
	})
	_, token := signupUser(t, srv.URL, "Ada", "ada@example.com", "secret1")

	resp := postJSON(t, srv.URL+"/api/generate", token, domain.GenerationRequest{
		Prompt:   "a todo cli",
		Language: "go",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("provider failure must not surface, expected 200, got %d", resp.StatusCode)
	}
	var out generateResponse
	decodeBody(t, resp, &out)
	if out.Source != "template" {
		t.Fatalf("expected template fallback, got %q", out.Source)
	}
}

func TestGenerateEndpointValidation(t *testing.T) {
	srv := newTestServer(t, app.Config{})
	_, token := signupUser(t, srv.URL, "Ada", "ada@example.com", "secret1")

	cases := []struct {
		name string
		req  domain.GenerationRequest
	}{
		{"missing prompt", domain.GenerationRequest{Language: "go"}},
		{"missing language", domain.GenerationRequest{Prompt: "a todo cli"}},
	}
	for _, tc := range cases {
		resp := postJSON(t, srv.URL+"/api/generate", token, tc.req)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, resp.StatusCode)
		}
	}

	// Unauthenticated callers never reach the generator.
	resp := postJSON(t, srv.URL+"/api/generate", "", domain.GenerationRequest{
		Prompt:   "a todo cli",
		Language: "go",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing token expected 401, got %d", resp.StatusCode)
	}
}
