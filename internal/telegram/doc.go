// Package telegram provides Telegram Bot API integration for sending Jira
// task reminders.
//
// The package sends formatted reminder messages via the Bot API using simple
// HTTP requests. No external dependencies required - uses only the standard
// library.
//
// Authentication requires a bot token (from @BotFather) and chat ID.
package telegram
