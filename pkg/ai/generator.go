package ai

import "context"

// TextGenerator generates text from a system prompt and user prompt.
// All LLM providers (OpenAI, Cohere, Anthropic) implement this interface.
type TextGenerator interface {
	// Name identifies the provider in logs.
	Name() string
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
