package telegram

import (
	"fmt"
	"log/slog"

	"adk/pkg/api"
	"adk/pkg/channels"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TelegramFactory handles creation of the telegram channel.
type TelegramFactory struct{}

// Create implements channels.ChannelFactory. A missing token skips the
// channel instead of failing startup; telegram is optional.
func (f *TelegramFactory) Create(rawConfig jsoniter.RawMessage, directory api.AgentDirectory, system *config.SystemConfig) (api.Channel, error) {
	var cfg TelegramConfig
	if len(rawConfig) > 0 {
		if err := json.Unmarshal(rawConfig, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse telegram config: %w", err)
		}
	}

	if cfg.Token == "" {
		slog.Warn("Telegram channel configured without a token, skipping")
		return nil, nil
	}

	return NewTelegramChannel(cfg, system.TelegramMessageLimit)
}

func init() {
	channels.RegisterChannel("telegram", &TelegramFactory{})
}
