package ollama

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"adk/pkg/agent"
	"adk/pkg/api"

	ollamaapi "github.com/ollama/ollama/api"
)

// OllamaAgent delegates text generation to a local Ollama instance. It is
// the zero-credential variant: useful when the playground runs without any
// cloud project configured.
type OllamaAgent struct {
	agent.Base

	model   string
	baseURL string

	client *ollamaapi.Client
}

// NewOllamaAgent creates an uninitialized Ollama agent for the given model.
func NewOllamaAgent(name, description, model, baseURL string) *OllamaAgent {
	return &OllamaAgent{
		Base:    agent.NewBase(name, description),
		model:   model,
		baseURL: baseURL,
	}
}

// Initialize implements api.Agent.
func (a *OllamaAgent) Initialize(ctx context.Context) error {
	if a.Initialized() {
		return nil
	}

	if a.baseURL != "" {
		u, err := url.Parse(a.baseURL)
		if err != nil {
			return api.InitializationError(err, "invalid ollama base URL %q", a.baseURL)
		}
		a.client = ollamaapi.NewClient(u, http.DefaultClient)
	} else {
		client, err := ollamaapi.ClientFromEnvironment()
		if err != nil {
			return api.InitializationError(err, "failed to create ollama client from environment")
		}
		a.client = client
	}

	a.MarkInitialized()
	slog.InfoContext(ctx, "Ollama agent initialized", "agent", a.Name(), "model", a.model, "base_url", a.baseURL)
	return nil
}

// ProcessMessage implements api.Agent. The chat call is non-streaming; the
// callback still fires per response fragment, so fragments are concatenated.
func (a *OllamaAgent) ProcessMessage(ctx context.Context, message string, msgContext map[string]any) (string, error) {
	if message == "" {
		return "", api.ValidationError("message must not be empty")
	}

	stream := false
	req := &ollamaapi.ChatRequest{
		Model:  a.model,
		Stream: &stream,
		Messages: []ollamaapi.Message{
			{Role: "user", Content: message},
		},
	}

	var sb strings.Builder
	err := a.client.Chat(ctx, req, func(resp ollamaapi.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", api.UpstreamError(err, "ollama chat failed for model %s", a.model)
	}

	text := sb.String()
	slog.InfoContext(ctx, "Generated response",
		"agent", a.Name(),
		"model", a.model,
		"message_length", len(message),
		"response_length", len(text),
	)
	return text, nil
}
