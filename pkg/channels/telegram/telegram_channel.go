package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"adk/pkg/api"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramConfig holds the bot settings for the telegram channel.
type TelegramConfig struct {
	Token string `json:"token"`
	// AgentType selects which registered agent answers telegram traffic.
	// Empty means the dispatcher's default agent.
	AgentType string `json:"agent_type,omitempty"`
}

// TelegramChannel bridges a Telegram bot to the dispatcher via long polling.
type TelegramChannel struct {
	config       TelegramConfig
	bot          *tgbotapi.BotAPI // Underlying Telegram SDK client
	messageLimit int              // Maximum characters per outgoing message
	dispatcher   api.Dispatcher

	stopCtx    context.Context
	stopCancel context.CancelFunc
}

// NewTelegramChannel authorizes the bot and prepares the channel.
func NewTelegramChannel(cfg TelegramConfig, messageLimit int) (*TelegramChannel, error) {
	ctx, cancel := context.WithCancel(context.Background())

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	slog.Info("Telegram bot authorized", "username", bot.Self.UserName)

	return &TelegramChannel{
		config:       cfg,
		bot:          bot,
		messageLimit: messageLimit,
		stopCtx:      ctx,
		stopCancel:   cancel,
	}, nil
}

// ID implements api.Channel.
func (t *TelegramChannel) ID() string {
	return "telegram"
}

// Start implements api.Channel. It initiates the long-polling update loop in
// a background goroutine, forwarding each text message to the dispatcher.
func (t *TelegramChannel) Start(dispatcher api.Dispatcher) error {
	t.dispatcher = dispatcher
	offset := 0

	go func() {
		for {
			select {
			case <-t.stopCtx.Done():
				return // Gracefully exit on shutdown
			default:
			}

			reqConfig := tgbotapi.NewUpdate(offset)
			reqConfig.Timeout = 60

			updates, err := t.bot.GetUpdates(reqConfig)
			if err != nil {
				select {
				case <-t.stopCtx.Done():
					return // Ignore error if we are shutting down
				default:
					slog.Debug("Failed to get telegram updates", "error", err)
					time.Sleep(3 * time.Second)
					continue
				}
			}

			for _, update := range updates {
				if update.UpdateID >= offset {
					offset = update.UpdateID + 1
				}
				if update.Message == nil || update.Message.Text == "" {
					continue
				}
				t.handleMessage(update.Message)
			}
		}
	}()

	return nil
}

// Stop implements api.Channel.
func (t *TelegramChannel) Stop() error {
	t.stopCancel()
	return nil
}

func (t *TelegramChannel) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	req := &api.ChatRequest{
		Message:   msg.Text,
		AgentType: t.config.AgentType,
		Context: map[string]any{
			"user_id": strconv.FormatInt(msg.From.ID, 10),
			"chat_id": strconv.FormatInt(chatID, 10),
		},
		Session: api.SessionContext{
			ChannelID: t.ID(),
			UserID:    strconv.FormatInt(msg.From.ID, 10),
			Username:  msg.From.UserName,
		},
	}

	resp, err := t.dispatcher.HandleChat(t.stopCtx, req)
	if err != nil {
		t.send(chatID, fmt.Sprintf("⚠️ %v", err))
		return
	}

	t.send(chatID, resp.Response)
}

// send delivers a message, splitting it into chunks below the platform limit.
func (t *TelegramChannel) send(chatID int64, message string) {
	for _, chunk := range splitMessage(message, t.messageLimit) {
		out := tgbotapi.NewMessage(chatID, chunk)
		if _, err := t.bot.Send(out); err != nil {
			slog.Error("Failed to send telegram message", "chat_id", chatID, "error", err)
			return
		}
	}
}

// splitMessage cuts message into rune-safe chunks of at most limit characters.
func splitMessage(message string, limit int) []string {
	if limit <= 0 || len(message) <= limit {
		return []string{message}
	}

	var chunks []string
	runes := []rune(message)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
