package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"codeforge/pkg/domain"
)

const generateSystemPrompt = "You are a code generation assistant. " +
	"You respond with a single JSON document and nothing else: " +
	"no prose, no markdown, no code fences."

// Generate turns a free-text prompt into a project manifest. The highest
// priority configured provider is asked once; any provider or parse failure
// falls back to the deterministic local template, so the caller always
// receives a usable manifest. The returned string names the source
// ("openai", "cohere", "anthropic", or "template").
func (a *App) Generate(ctx context.Context, req domain.GenerationRequest) (domain.ProjectManifest, string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return domain.ProjectManifest{}, "", ErrPromptRequired
	}
	if strings.TrimSpace(req.Language) == "" {
		return domain.ProjectManifest{}, "", ErrLanguageRequired
	}

	if len(a.generators) == 0 {
		return templateManifest(req), "template", nil
	}

	gen := a.generators[0]
	callCtx, cancel := context.WithTimeout(ctx, a.genTimeout)
	defer cancel()
	raw, err := gen.GenerateText(callCtx, generateSystemPrompt, buildUserPrompt(req))
	if err != nil {
		slog.Warn("provider call failed, using template fallback", "provider", gen.Name(), "err", err)
		return templateManifest(req), "template", nil
	}
	manifest, err := parseManifest(raw)
	if err != nil {
		slog.Warn("provider response unparseable, using template fallback", "provider", gen.Name(), "err", err)
		return templateManifest(req), "template", nil
	}
	return manifest, gen.Name(), nil
}

func buildUserPrompt(req domain.GenerationRequest) string {
	return fmt.Sprintf(`Generate a complete %s project of type %q for the following request:

%s

Return ONLY a JSON document with exactly this schema, no prose and no markdown wrapping:
{"projectName": string, "description": string, "files": [{"path": string, "content": string}], "instructions": string}
The schema is mandatory. Every file the project needs must appear in "files".`,
		req.Language, req.ProjectType, req.Prompt)
}

// parseManifest extracts the manifest JSON from raw provider text.
// Providers routinely wrap output in a fenced code block despite being told
// not to, so a leading/trailing fence is stripped before parsing.
func parseManifest(raw string) (domain.ProjectManifest, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	var manifest domain.ProjectManifest
	if err := json.Unmarshal([]byte(text), &manifest); err != nil {
		return domain.ProjectManifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if strings.TrimSpace(manifest.ProjectName) == "" {
		return domain.ProjectManifest{}, fmt.Errorf("manifest missing projectName")
	}
	if len(manifest.Files) == 0 {
		return domain.ProjectManifest{}, fmt.Errorf("manifest has no files")
	}
	for _, f := range manifest.Files {
		if strings.TrimSpace(f.Path) == "" {
			return domain.ProjectManifest{}, fmt.Errorf("manifest file missing path")
		}
	}
	return manifest, nil
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	// Drop the opening fence line ("```" or "```json").
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		return strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
