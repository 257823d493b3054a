package ollama

import (
	"fmt"

	"adk/pkg/api"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the per-tag configuration block for the Ollama agent.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Model       string `json:"model"`
	BaseURL     string `json:"base_url,omitempty"`
}

// OllamaFactory handles creation of Ollama agents.
type OllamaFactory struct{}

// Create implements agent.Factory.
func (f *OllamaFactory) Create(rawConfig jsoniter.RawMessage, sys *config.SystemConfig) (api.Agent, error) {
	cfg := Config{
		Name:        sys.AgentName,
		Description: sys.AgentDescription,
		Model:       "llama3.2",
	}
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse ollama agent config: %w", err)
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = sys.OllamaDefaultURL
	}
	return NewOllamaAgent(cfg.Name, cfg.Description, cfg.Model, baseURL), nil
}
