package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/omerda/jira-reminder/internal/issue"
)

const descriptionPreviewLen = 120

// FormatReminder formats a batch of issues as a single reminder message.
// Every issue key appears in the output, each with a clickable browse link.
func FormatReminder(issues []*issue.Issue) string {
	var msg strings.Builder

	msg.WriteString("⚠️ <b>Jira tasks need updating</b>\n\n")

	for _, iss := range issues {
		msg.WriteString(fmt.Sprintf("• <a href=\"%s\">%s</a>: %s\n",
			iss.BrowseURL, iss.Key, escapeSummary(iss.Summary)))

		var details []string
		if iss.Status != "" {
			details = append(details, iss.Status)
		}
		if iss.DueDate != "" {
			details = append(details, fmt.Sprintf("due %s", iss.DueDate))
		}
		if len(details) > 0 {
			msg.WriteString(fmt.Sprintf("  <i>%s</i>\n", html.EscapeString(strings.Join(details, " · "))))
		}

		if iss.Description != "" {
			preview := truncate(iss.Description, descriptionPreviewLen)
			msg.WriteString(fmt.Sprintf("  %s\n", html.EscapeString(preview)))
		}

		msg.WriteString("\n")
	}

	msg.WriteString(fmt.Sprintf("%d task%s waiting", len(issues), pluralize(len(issues))))

	return msg.String()
}

// FormatAllClear formats the message sent when the query goes empty after
// having had open tasks.
func FormatAllClear() string {
	return "✅ <b>All clear</b>\n\nNo Jira tasks need updating."
}

func escapeSummary(summary string) string {
	if summary == "" {
		return "No summary"
	}
	return html.EscapeString(summary)
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// truncate shortens a description preview without splitting runes.
func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen <= 3 || len(runes) <= maxLen {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLen-3])) + "..."
}
