package echo

import (
	"fmt"

	"adk/pkg/api"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the per-tag configuration block for the echo agent.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EchoFactory handles creation of echo agents.
type EchoFactory struct{}

// Create implements agent.Factory.
func (f *EchoFactory) Create(rawConfig jsoniter.RawMessage, sys *config.SystemConfig) (api.Agent, error) {
	cfg := Config{
		Name:        sys.AgentName,
		Description: sys.AgentDescription,
	}
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse echo agent config: %w", err)
		}
	}
	return NewEchoAgent(cfg.Name, cfg.Description), nil
}
