package notifier

import (
	"context"
	"fmt"
	"io"

	"github.com/omerda/jira-reminder/internal/issue"
	"github.com/omerda/jira-reminder/internal/telegram"
)

// DryRunNotifier prints what would be sent without talking to Telegram.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the message that would be sent.
func (n *DryRunNotifier) Notify(_ context.Context, issues []*issue.Issue) (bool, error) {
	if len(issues) == 0 {
		return false, nil
	}

	msg := telegram.FormatReminder(issues)
	fmt.Fprintf(n.out, "--- Reminder (%d issues) ---\n", len(issues))
	fmt.Fprintln(n.out, msg)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", len(msg))
	return true, nil
}

// NotifyAllClear prints the all-clear message that would be sent.
func (n *DryRunNotifier) NotifyAllClear(_ context.Context) (bool, error) {
	fmt.Fprintln(n.out, "--- All clear ---")
	fmt.Fprintln(n.out, telegram.FormatAllClear())
	return true, nil
}
