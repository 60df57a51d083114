// Package notifier provides notification interfaces and implementations for
// Jira task reminders.
//
// The Telegram implementation gates sends on a configurable work-hours window
// so reminders do not fire at night; suppressed sends are reported as
// undelivered so the monitor re-sends them during the next in-window check.
// A dry-run implementation prints messages instead of sending them.
package notifier
