// Package monitor coordinates the reminder pipeline: fetch open issues from
// Jira, diff them against the notified state, send reminders for new ones,
// and persist the updated state.
package monitor
