// Package storage provides JSON-based persistence for the notified-keys state.
//
// The state file records which issue keys have already been sent to Telegram,
// so repeated cron runs only remind about issues that are new since the last
// check. The default location is ~/.local/share/jira-reminder/.
package storage
