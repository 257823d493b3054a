package vertex

import (
	"fmt"

	"adk/pkg/api"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the per-tag configuration block for the Vertex AI agent.
// Google Cloud credentials are not configured here; they come from the
// system configuration (environment) at Initialize time.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Model       string `json:"model"`
}

// VertexFactory handles creation of Vertex AI agents.
type VertexFactory struct{}

// Create implements agent.Factory.
func (f *VertexFactory) Create(rawConfig jsoniter.RawMessage, sys *config.SystemConfig) (api.Agent, error) {
	cfg := Config{
		Name:        sys.AgentName,
		Description: sys.AgentDescription,
		Model:       "gemini-2.0-flash",
	}
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse vertex agent config: %w", err)
		}
	}
	return NewVertexAIAgent(cfg.Name, cfg.Description, cfg.Model, sys.GoogleCloudProject, sys.VertexAILocation, sys.GoogleCredentials), nil
}
