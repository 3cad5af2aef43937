package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService — резервный канал доставки reset-токенов в служебный чат
// (у пользователей нет привязанных telegram-аккаунтов, destination уходит в
// текст сообщения для операторов).
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, chatID int64) (*TelegramService, error) {
	if botToken == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram: bot token and chat id are required")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram: init bot: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot, chatID: chatID}, nil
}

func (t *TelegramService) SendPasswordReset(destination, token string) error {
	text := fmt.Sprintf("Password reset requested for %s\nToken: %s", destination, token)
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}
