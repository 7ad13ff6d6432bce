// Package bot delivers study reminders through Telegram.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/vocabplan/pkg/models"
)

// sender is the part of tgbotapi.BotAPI the notifier uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends reminders to learners' Telegram chats.
// It implements scheduler.Notifier.
type Notifier struct {
	api    sender
	logger *slog.Logger
}

// NewNotifier connects to the Telegram Bot API
func NewNotifier(token string, debug bool, logger *slog.Logger) (*Notifier, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is not set")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = debug

	n := newNotifier(api, logger)
	n.logger.Info("authorized telegram bot", "account", api.Self.UserName)
	return n, nil
}

func newNotifier(api sender, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{api: api, logger: logger.With("component", "telegram_notifier")}
}

// SendReminders tells a learner how many words are waiting today
func (n *Notifier) SendReminders(ctx context.Context, learner models.LearnerSettings, newWords, dueReviews int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// В Telegram user ID и chat ID совпадают для личных чатов
	chatID := learner.ChatID
	if chatID == 0 {
		chatID = learner.LearnerID
	}

	msg := tgbotapi.NewMessage(chatID, ReminderText(newWords, dueReviews))
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error("failed to send reminder", "learner_id", learner.LearnerID, "error", err)
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	n.logger.Info("sent reminder",
		"learner_id", learner.LearnerID,
		"new_words", newWords,
		"due_reviews", dueReviews)
	return nil
}

// ReminderText formats the reminder message
func ReminderText(newWords, dueReviews int) string {
	switch {
	case newWords > 0 && dueReviews > 0:
		return fmt.Sprintf("Сегодня %d %s для изучения и %d %s для повторения!",
			newWords, WordForm(newWords), dueReviews, WordForm(dueReviews))
	case newWords > 0:
		return fmt.Sprintf("Сегодня %d %s для изучения!", newWords, WordForm(newWords))
	default:
		return fmt.Sprintf("У вас %d %s для повторения!", dueReviews, WordForm(dueReviews))
	}
}

// WordForm returns the Russian plural of "слово" for n
func WordForm(n int) string {
	if n < 0 {
		n = -n
	}
	switch {
	case n%100 >= 11 && n%100 <= 14:
		return "слов"
	case n%10 == 1:
		return "слово"
	case n%10 >= 2 && n%10 <= 4:
		return "слова"
	default:
		return "слов"
	}
}
