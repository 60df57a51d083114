package notifier

import (
	"context"

	"github.com/omerda/jira-reminder/internal/issue"
)

// Notifier defines the interface for posting issue reminders.
type Notifier interface {
	// Notify posts a reminder for the given issues. The bool result reports
	// whether a message was actually delivered; a suppressed send (e.g.
	// outside work hours) returns false with a nil error.
	Notify(ctx context.Context, issues []*issue.Issue) (bool, error)

	// NotifyAllClear posts a short message saying no tasks remain.
	NotifyAllClear(ctx context.Context) (bool, error)
}
