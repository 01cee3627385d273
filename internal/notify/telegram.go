package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"invite-bot/internal/models"
)

// Telegram posts the summary to an admin chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &Telegram{bot: b, chatID: chatID}, nil
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) NotifyInvited(ctx context.Context, invited []models.Response) error {
	if len(invited) == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, ComposeText(invited))
	_, err := t.bot.Send(msg)
	return err
}
