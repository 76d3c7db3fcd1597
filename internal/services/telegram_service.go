package services

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
)

// TelegramService delivers reconciler notifications to users who linked a
// chat. A nil service is a no-op, so the app runs without a bot token.
type TelegramService struct {
	bot   *tgbotapi.BotAPI
	users repositories.UserRepository
}

func NewTelegramService(token string, users repositories.UserRepository) (*TelegramService, error) {
	if token == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &TelegramService{bot: bot, users: users}, nil
}

// Dispatch sends one message per notification. Delivery failures are logged
// and skipped; a broken chat must not fail the sweep.
func (t *TelegramService) Dispatch(ctx context.Context, notifications []models.Notification) {
	if t == nil {
		return
	}
	for _, n := range notifications {
		user, err := t.users.GetByID(ctx, n.UserID)
		if err != nil || user.TelegramChatID == 0 {
			continue
		}
		msg := tgbotapi.NewMessage(user.TelegramChatID, notificationText(n))
		if _, err := t.bot.Send(msg); err != nil {
			log.Printf("[tg][dispatch] chat=%d assignment=%d: %v", user.TelegramChatID, n.AssignmentID, err)
		}
	}
}

func notificationText(n models.Notification) string {
	switch n.Type {
	case models.NotificationStarted:
		return fmt.Sprintf("Task #%d has started.", n.AssignmentID)
	case models.NotificationCompleteReminder:
		return fmt.Sprintf("Task #%d has ended, don't forget to record feedback.", n.AssignmentID)
	}
	return fmt.Sprintf("Update for task #%d.", n.AssignmentID)
}
