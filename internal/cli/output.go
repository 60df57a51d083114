package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/omerda/jira-reminder/internal/logger"
	"github.com/omerda/jira-reminder/internal/monitor"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// runSummary is the JSON envelope for a check result.
type runSummary struct {
	*monitor.Result
	Metrics map[string]interface{} `json:"metrics,omitempty"`
}

// WriteOutput writes the check result in the specified format.
func WriteOutput(w io.Writer, result *monitor.Result, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result, verbose)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *monitor.Result, verbose bool) error {
	summary := runSummary{Result: result}
	if verbose {
		summary.Metrics = logger.MetricsSnapshot()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

func writeText(w io.Writer, result *monitor.Result, verbose bool) error {
	if result.TotalOpen == 0 {
		fmt.Fprintln(w, "No open tasks.")
		return nil
	}

	if len(result.NewIssues) == 0 {
		fmt.Fprintf(w, "%d open task(s), all already notified.\n", result.TotalOpen)
		return nil
	}

	for _, iss := range result.NewIssues {
		fmt.Fprintf(w, "NEW: %s: %s\n", iss.Key, iss.Summary)
		if verbose {
			if iss.Status != "" {
				fmt.Fprintf(w, "     Status: %s\n", iss.Status)
			}
			if iss.DueDate != "" {
				fmt.Fprintf(w, "     Due: %s\n", iss.DueDate)
			}
			fmt.Fprintf(w, "     URL: %s\n", iss.BrowseURL)
		}
	}

	status := "sent"
	if result.Suppressed {
		status = "suppressed (outside work hours)"
	} else if !result.Sent {
		status = "not sent"
	}
	fmt.Fprintf(w, "\nTotal: %d new of %d open, reminder %s\n",
		len(result.NewIssues), result.TotalOpen, status)

	return nil
}
