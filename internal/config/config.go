// Package config loads reminder configuration from environment variables.
//
// A .env file in the working directory is loaded first (and ignored if
// missing), matching the deployment style of running the binary from a
// checkout with credentials kept out of the shell profile.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJQL selects open issues assigned to the authenticated user that are
// due soon. Override with JIRA_JQL for team-specific queries.
const DefaultJQL = `assignee = currentUser() AND resolution = EMPTY AND due <= endOfWeek() ORDER BY due ASC`

const (
	defaultMaxResults     = 50
	defaultStateFile      = "~/.local/share/jira-reminder/notified_state.json"
	defaultCheckInterval  = 30 * time.Minute
	defaultWorkHoursStart = 8
	defaultWorkHoursEnd   = 20
	defaultTimezone       = "Asia/Jerusalem"
	defaultLogLevel       = "info"
)

// Config holds all configuration for the reminder.
type Config struct {
	// Jira configuration
	JiraURL      string // Required: base URL of the Jira instance
	JiraEmail    string // Required: account email for basic auth
	JiraAPIToken string // Required: API token for basic auth
	JQL          string // Query selecting issues to remind about
	MaxResults   int    // Page size for Jira search requests

	// Telegram configuration
	TelegramToken  string // Required: bot token from @BotFather
	TelegramChatID string // Required: target chat ID

	// State and scheduling
	StateFile     string        // Path to the notified-keys state file
	CheckInterval time.Duration // Interval between checks in watch mode

	// Notification window: sends outside [Start, End) hours are suppressed
	WorkHoursStart int
	WorkHoursEnd   int
	Location       *time.Location

	// Log level
	LogLevel string
}

// Load builds a Config from the environment, reading a .env file first if one
// exists. All missing required variables are reported in a single error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	requiredVars := map[string]*string{
		"JIRA_URL":         &cfg.JiraURL,
		"JIRA_EMAIL":       &cfg.JiraEmail,
		"JIRA_API_TOKEN":   &cfg.JiraAPIToken,
		"TELEGRAM_TOKEN":   &cfg.TelegramToken,
		"TELEGRAM_CHAT_ID": &cfg.TelegramChatID,
	}

	var missingVars []string
	for env, ptr := range requiredVars {
		*ptr = strings.TrimSpace(os.Getenv(env))
		if *ptr == "" {
			missingVars = append(missingVars, env)
		}
	}

	if len(missingVars) > 0 {
		sort.Strings(missingVars)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	cfg.JiraURL = strings.TrimRight(cfg.JiraURL, "/")

	cfg.JQL = getenvDefault("JIRA_JQL", DefaultJQL)
	cfg.StateFile = getenvDefault("STATE_FILE", defaultStateFile)
	cfg.LogLevel = getenvDefault("LOG_LEVEL", defaultLogLevel)

	var err error
	if cfg.MaxResults, err = getenvInt("JIRA_MAX_RESULTS", defaultMaxResults); err != nil {
		return nil, err
	}
	if cfg.WorkHoursStart, err = getenvInt("WORK_HOURS_START", defaultWorkHoursStart); err != nil {
		return nil, err
	}
	if cfg.WorkHoursEnd, err = getenvInt("WORK_HOURS_END", defaultWorkHoursEnd); err != nil {
		return nil, err
	}
	if cfg.WorkHoursStart < 0 || cfg.WorkHoursStart > 23 || cfg.WorkHoursEnd < 0 || cfg.WorkHoursEnd > 24 {
		return nil, fmt.Errorf("work hours out of range: start=%d end=%d", cfg.WorkHoursStart, cfg.WorkHoursEnd)
	}

	if cfg.CheckInterval, err = getenvDuration("CHECK_INTERVAL", defaultCheckInterval); err != nil {
		return nil, err
	}
	if cfg.CheckInterval < time.Second {
		return nil, fmt.Errorf("CHECK_INTERVAL too short: %s", cfg.CheckInterval)
	}

	tz := getenvDefault("WORK_HOURS_TZ", defaultTimezone)
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", tz, err)
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
