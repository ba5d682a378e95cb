package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultCohereBaseURL = "https://api.cohere.ai/v1"
	defaultCohereModel   = "command-r"
)

// CohereGenerator calls the Cohere /v1/chat endpoint.
type CohereGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewCohereGenerator builds a Cohere-backed TextGenerator.
func NewCohereGenerator(apiKey, model string) *CohereGenerator {
	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultCohereModel
	}
	return &CohereGenerator{
		baseURL: defaultCohereBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Name identifies the provider in logs.
func (g *CohereGenerator) Name() string { return "cohere" }

// GenerateText implements TextGenerator using the Cohere chat API.
// The system prompt maps to Cohere's preamble field.
func (g *CohereGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(cohereChatRequest{
		Model:    g.model,
		Preamble: systemPrompt,
		Message:  userPrompt,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cohere request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp cohereErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Message != "" {
			return "", fmt.Errorf("cohere api error: %s", errResp.Message)
		}
		return "", fmt.Errorf("cohere api error: %s", resp.Status)
	}

	var chatResp cohereChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("cohere decode: %w", err)
	}
	text := strings.TrimSpace(chatResp.Text)
	if text == "" {
		return "", fmt.Errorf("empty response from cohere")
	}
	return text, nil
}

// Cohere request/response types.

type cohereChatRequest struct {
	Model    string `json:"model"`
	Preamble string `json:"preamble,omitempty"`
	Message  string `json:"message"`
}

type cohereChatResponse struct {
	Text string `json:"text"`
}

type cohereErrorResponse struct {
	Message string `json:"message"`
}
