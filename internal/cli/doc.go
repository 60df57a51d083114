// Package cli implements the command-line interface for jira-reminder.
//
// The cli package provides the Cobra-based CLI with support for one-shot and
// watch-mode checks, dry runs, and text/JSON output. It coordinates the jira,
// storage, notifier, and monitor packages to fetch, persist, and report on
// open Jira tasks needing reminders.
package cli
