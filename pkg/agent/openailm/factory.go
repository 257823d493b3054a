package openailm

import (
	"fmt"

	"adk/pkg/api"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the per-tag configuration block for the OpenAI agent.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Model       string `json:"model"`
	BaseURL     string `json:"base_url,omitempty"`
}

// OpenAIFactory handles creation of OpenAI agents.
type OpenAIFactory struct{}

// Create implements agent.Factory.
func (f *OpenAIFactory) Create(rawConfig jsoniter.RawMessage, sys *config.SystemConfig) (api.Agent, error) {
	cfg := Config{
		Name:        sys.AgentName,
		Description: sys.AgentDescription,
		Model:       "gpt-4o-mini",
	}
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse openai agent config: %w", err)
		}
	}
	return NewOpenAIAgent(cfg.Name, cfg.Description, cfg.Model, sys.OpenAIAPIKey, cfg.BaseURL), nil
}
