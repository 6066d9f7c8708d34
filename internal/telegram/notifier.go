// Package telegram posts complaint alerts to a staff Telegram chat.
package telegram

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"complaintdesk/backend/internal/localization"
	"complaintdesk/backend/internal/models"
)

// NotifierService sends one message whenever complaints newly cross into
// the critical tier.
type NotifierService struct {
	BotAPI    *tgbotapi.BotAPI
	ChatID    int64
	Localizer *localization.Localizer
	Lang      string
}

// NewNotifierService creates a NotifierService instance.
func NewNotifierService(token string, chatID int64, localizer *localization.Localizer) (*NotifierService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Telegram notifier authorized on account %s", bot.Self.UserName)

	return &NotifierService{
		BotAPI:    bot,
		ChatID:    chatID,
		Localizer: localizer,
		Lang:      "he",
	}, nil
}

// CriticalAlert satisfies feed.Notifier. Send failures are logged and
// dropped; alerting is best-effort.
func (s *NotifierService) CriticalAlert(complaints []models.Complaint) {
	if len(complaints) == 0 {
		return
	}
	msg := tgbotapi.NewMessage(s.ChatID, FormatCriticalAlert(s.Localizer, s.Lang, complaints))
	if _, err := s.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send critical alert: %v", err)
	}
}

// FormatCriticalAlert builds the alert text: a localized header plus one
// line per complaint.
func FormatCriticalAlert(localizer *localization.Localizer, lang string, complaints []models.Complaint) string {
	var b strings.Builder
	b.WriteString(localizer.GetString(lang, "critical_alert_header"))
	for _, c := range complaints {
		title := c.Title
		if title == "" {
			title = c.ID
		}
		b.WriteString(fmt.Sprintf("\n• %s [%s] %dd", title, c.Category, c.DaysOld))
	}
	return b.String()
}
