package issue

import "time"

// Issue represents a Jira issue needing a reminder.
type Issue struct {
	Key         string    `json:"key"`
	Summary     string    `json:"summary"`
	Status      string    `json:"status,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	DueDate     string    `json:"due_date,omitempty"` // YYYY-MM-DD as returned by Jira
	Description string    `json:"description,omitempty"`
	BrowseURL   string    `json:"browse_url"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// DueTime parses the due date. Returns the zero time if the issue has no due
// date or it cannot be parsed.
func (i *Issue) DueTime() time.Time {
	if i.DueDate == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", i.DueDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Overdue reports whether the issue's due date is before the given day.
func (i *Issue) Overdue(now time.Time) bool {
	due := i.DueTime()
	if due.IsZero() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
