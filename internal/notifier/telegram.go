package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/omerda/jira-reminder/internal/issue"
	"github.com/omerda/jira-reminder/internal/logger"
	"github.com/omerda/jira-reminder/internal/telegram"

	"go.uber.org/zap"
)

// TelegramNotifier sends issue reminders to a Telegram chat, suppressing
// sends outside the configured work hours.
type TelegramNotifier struct {
	client *telegram.Client
	window WorkHours
	now    func() time.Time
}

// NewTelegramNotifier creates a Telegram notifier with the given send window.
func NewTelegramNotifier(client *telegram.Client, window WorkHours) *TelegramNotifier {
	return &TelegramNotifier{
		client: client,
		window: window,
		now:    time.Now,
	}
}

// Notify sends one reminder message covering all issues. Outside work hours
// the send is skipped and reported as not delivered, so the caller does not
// mark the issues as notified.
func (n *TelegramNotifier) Notify(ctx context.Context, issues []*issue.Issue) (bool, error) {
	if len(issues) == 0 {
		return false, nil
	}

	if !n.window.Contains(n.now()) {
		logger.L().Info("outside work hours, skipping notification",
			zap.Int("issues", len(issues)))
		return false, nil
	}

	msg := telegram.FormatReminder(issues)
	if err := n.client.SendMessage(ctx, msg); err != nil {
		return false, fmt.Errorf("sending reminder: %w", err)
	}

	logger.IncrCounter("telegram.messages_sent")
	logger.L().Info("telegram reminder sent", zap.Int("issues", len(issues)))
	return true, nil
}

// NotifyAllClear sends the all-clear message, subject to the same window.
func (n *TelegramNotifier) NotifyAllClear(ctx context.Context) (bool, error) {
	if !n.window.Contains(n.now()) {
		logger.L().Info("outside work hours, skipping all-clear notification")
		return false, nil
	}

	if err := n.client.SendMessage(ctx, telegram.FormatAllClear()); err != nil {
		return false, fmt.Errorf("sending all-clear: %w", err)
	}

	logger.IncrCounter("telegram.messages_sent")
	return true, nil
}
