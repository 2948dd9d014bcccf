package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"authservice/internal/config"
)

// Notifier reports sign-up events to an operator channel. It is optional
// infrastructure: delivery failures are logged and never surfaced to the
// client.
type Notifier interface {
	AccountCreated(email string)
}

// TelegramNotifier sends account notifications to a configured chat.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier creates a notifier instance. Returns (nil, nil) when
// the notifier is disabled or the bot token is empty.
func NewTelegramNotifier(cfg *config.Config, logger *zap.Logger) (*TelegramNotifier, error) {
	if !cfg.Notifier.Enabled || cfg.BotToken == "" {
		logger.Info("Telegram notifier is disabled (notifier.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram notifier authorized", zap.String("username", botAPI.Self.UserName))

	return &TelegramNotifier{
		api:    botAPI,
		chatID: cfg.Notifier.ChatID,
		logger: logger,
	}, nil
}

// AccountCreated announces a new registration. A nil receiver is a no-op so
// callers don't have to branch on whether the notifier is enabled.
func (n *TelegramNotifier) AccountCreated(email string) {
	if n == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("New account registered: %s", email))
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("Failed to send registration notification", zap.Error(err))
	}
}
