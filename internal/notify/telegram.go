package notify

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskflow/internal/model"
)

// UserLookup resolves internal user ids to their stored profiles.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// TelegramSender delivers notifications to users' Telegram chats.
type TelegramSender struct {
	api   *tgbotapi.BotAPI
	users UserLookup
}

func NewTelegramSender(token string, users UserLookup) (*TelegramSender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] notifier authorized on account %s", api.Self.UserName)

	return &TelegramSender{api: api, users: users}, nil
}

func (s *TelegramSender) Send(ctx context.Context, userID uint, message string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TelegramID == 0 {
		return fmt.Errorf("user %d has no telegram chat", userID)
	}

	msg := tgbotapi.NewMessage(user.TelegramID, message)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
