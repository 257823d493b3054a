package vertex

import (
	"context"
	"log/slog"
	"os"

	"adk/pkg/agent"
	"adk/pkg/api"

	"google.golang.org/genai"
)

// Generation parameters carried over from the original playground defaults.
const (
	defaultTemperature     = 0.7
	defaultTopP            = 0.8
	defaultTopK            = 40
	defaultMaxOutputTokens = 1024
)

// VertexAIAgent delegates text generation to a Vertex AI model. The genai
// client is acquired at Initialize time from the project, location, and
// credentials supplied by the system configuration; nothing network-facing
// happens at construction.
type VertexAIAgent struct {
	agent.Base

	model       string
	project     string
	location    string
	credentials string

	client *genai.Client
}

// NewVertexAIAgent creates an uninitialized Vertex AI agent for the given model.
func NewVertexAIAgent(name, description, model, project, location, credentials string) *VertexAIAgent {
	return &VertexAIAgent{
		Base:        agent.NewBase(name, description),
		model:       model,
		project:     project,
		location:    location,
		credentials: credentials,
	}
}

// Model returns the configured Vertex AI model name.
func (a *VertexAIAgent) Model() string { return a.model }

// Initialize implements api.Agent. It validates the Google Cloud settings
// and acquires the genai client against the Vertex AI backend.
func (a *VertexAIAgent) Initialize(ctx context.Context) error {
	if a.Initialized() {
		return nil
	}

	if a.project == "" {
		return api.InitializationError(nil, "GOOGLE_CLOUD_PROJECT is not set")
	}
	if a.credentials != "" {
		if _, err := os.Stat(a.credentials); err != nil {
			return api.InitializationError(err, "credentials file %q is not readable", a.credentials)
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  a.project,
		Location: a.location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return api.InitializationError(err, "failed to create Vertex AI client")
	}

	a.client = client
	a.MarkInitialized()
	slog.InfoContext(ctx, "Vertex AI agent initialized", "agent", a.Name(), "model", a.model, "project", a.project, "location", a.location)
	return nil
}

// ProcessMessage implements api.Agent. It performs a single blocking
// generation call; cancellation and timeouts are delegated to the caller's
// context and the client library.
func (a *VertexAIAgent) ProcessMessage(ctx context.Context, message string, msgContext map[string]any) (string, error) {
	if message == "" {
		return "", api.ValidationError("message must not be empty")
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(message), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](defaultTemperature),
		TopP:            genai.Ptr[float32](defaultTopP),
		TopK:            genai.Ptr[float32](defaultTopK),
		MaxOutputTokens: defaultMaxOutputTokens,
	})
	if err != nil {
		return "", api.UpstreamError(err, "vertex ai generation failed for model %s", a.model)
	}

	text := resp.Text()
	if text == "" {
		return "", api.UpstreamError(nil, "model %s returned no text", a.model)
	}

	slog.InfoContext(ctx, "Generated response",
		"agent", a.Name(),
		"model", a.model,
		"message_length", len(message),
		"response_length", len(text),
	)
	return text, nil
}
