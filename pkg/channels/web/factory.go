package web

import (
	"fmt"

	"adk/pkg/api"
	"adk/pkg/channels"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

// WebFactory handles creation of the web channel.
type WebFactory struct{}

// Create implements channels.ChannelFactory.
func (f *WebFactory) Create(rawConfig jsoniter.RawMessage, directory api.AgentDirectory, system *config.SystemConfig) (api.Channel, error) {
	pCfg := WebConfig{Port: 8000}

	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &pCfg); err != nil {
			return nil, fmt.Errorf("failed to parse web config: %w", err)
		}
	}

	return NewWebChannel(pCfg, directory), nil
}

func init() {
	channels.RegisterChannel("web", &WebFactory{})
}
