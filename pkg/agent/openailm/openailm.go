package openailm

import (
	"context"
	"log/slog"

	"adk/pkg/agent"
	"adk/pkg/api"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIAgent delegates text generation to the OpenAI chat completions API.
// A custom base URL makes it usable against any OpenAI-compatible serving
// endpoint.
type OpenAIAgent struct {
	agent.Base

	model   string
	apiKey  string
	baseURL string

	client *openai.Client
}

// NewOpenAIAgent creates an uninitialized OpenAI agent for the given model.
func NewOpenAIAgent(name, description, model, apiKey, baseURL string) *OpenAIAgent {
	return &OpenAIAgent{
		Base:    agent.NewBase(name, description),
		model:   model,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// Initialize implements api.Agent.
func (a *OpenAIAgent) Initialize(ctx context.Context) error {
	if a.Initialized() {
		return nil
	}

	if a.apiKey == "" {
		return api.InitializationError(nil, "OPENAI_API_KEY is not set")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(a.apiKey),
	}
	if a.baseURL != "" {
		opts = append(opts, option.WithBaseURL(a.baseURL))
	}

	client := openai.NewClient(opts...)
	a.client = &client
	a.MarkInitialized()
	slog.InfoContext(ctx, "OpenAI agent initialized", "agent", a.Name(), "model", a.model, "base_url", a.baseURL)
	return nil
}

// ProcessMessage implements api.Agent.
func (a *OpenAIAgent) ProcessMessage(ctx context.Context, message string, msgContext map[string]any) (string, error) {
	if message == "" {
		return "", api.ValidationError("message must not be empty")
	}

	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(message),
		},
	})
	if err != nil {
		return "", api.UpstreamError(err, "openai completion failed for model %s", a.model)
	}
	if len(completion.Choices) == 0 {
		return "", api.UpstreamError(nil, "model %s returned no choices", a.model)
	}

	text := completion.Choices[0].Message.Content
	slog.InfoContext(ctx, "Generated response",
		"agent", a.Name(),
		"model", a.model,
		"message_length", len(message),
		"response_length", len(text),
	)
	return text, nil
}
