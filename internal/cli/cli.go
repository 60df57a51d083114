package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/omerda/jira-reminder/internal/config"
	"github.com/omerda/jira-reminder/internal/jira"
	"github.com/omerda/jira-reminder/internal/logger"
	"github.com/omerda/jira-reminder/internal/monitor"
	"github.com/omerda/jira-reminder/internal/notifier"
	"github.com/omerda/jira-reminder/internal/storage"
	"github.com/omerda/jira-reminder/internal/telegram"
)

const (
	ExitSuccess       = 0
	ExitError         = 1
	ExitRemindersSent = 2
)

var (
	flagJQL         string
	flagStateFile   string
	flagFormat      string
	flagDryRun      bool
	flagNotifyClear bool
	flagWatch       bool
	flagInterval    time.Duration
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jira-reminder",
		Short: "Remind a Telegram chat about open Jira tasks",
		Long: `Polls Jira with a JQL query and sends reminders for open tasks to a
Telegram chat. Tracks notified issue keys across runs so each task is only
reminded about once until it is resolved.

Credentials come from the environment (or a .env file): JIRA_URL, JIRA_EMAIL,
JIRA_API_TOKEN, TELEGRAM_TOKEN, TELEGRAM_CHAT_ID.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	cmd.Flags().StringVar(&flagJQL, "jql", "", "JQL query override (default from JIRA_JQL)")
	cmd.Flags().StringVar(&flagStateFile, "state-file", "", "Notified-state file override (default from STATE_FILE)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print messages without sending")
	cmd.Flags().BoolVar(&flagNotifyClear, "notify-clear", false, "Send an all-clear message when no tasks remain")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Keep running, checking on an interval")
	cmd.Flags().DurationVar(&flagInterval, "interval", 0, "Check interval in watch mode (default from CHECK_INTERVAL)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and run metrics in output")

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if err == errRemindersSent {
			return ExitRemindersSent
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

// errRemindersSent signals the cron-friendly exit code 2 through RunE.
var errRemindersSent = fmt.Errorf("reminders sent")

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	if err := logger.Init(level); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	mon, err := buildMonitor(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagWatch {
		return mon.Watch(ctx, cfg.CheckInterval)
	}

	result, err := mon.Check(ctx)
	if err != nil {
		return err
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return err
	}

	if result.Sent && len(result.NewIssues) > 0 {
		return errRemindersSent
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if flagJQL != "" {
		cfg.JQL = flagJQL
	}
	if flagStateFile != "" {
		cfg.StateFile = flagStateFile
	}
	if flagInterval > 0 {
		cfg.CheckInterval = flagInterval
	}
}

// buildMonitor wires the Jira client, storage, and notifier together.
func buildMonitor(cfg *config.Config, out io.Writer) (*monitor.Monitor, error) {
	jiraClient, err := jira.NewClient(cfg.JiraURL, cfg.JiraEmail, cfg.JiraAPIToken, cfg.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("initializing jira client: %w", err)
	}

	store, err := storage.New(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	var n notifier.Notifier
	if flagDryRun {
		n = notifier.NewDryRunNotifier(out)
	} else {
		tgClient, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, fmt.Errorf("initializing telegram client: %w", err)
		}
		n = notifier.NewTelegramNotifier(tgClient, notifier.WorkHours{
			Start:    cfg.WorkHoursStart,
			End:      cfg.WorkHoursEnd,
			Location: cfg.Location,
		})
	}

	var opts []monitor.Option
	if flagNotifyClear {
		opts = append(opts, monitor.WithNotifyClear())
	}

	return monitor.New(jiraClient, n, store, cfg.JQL, opts...), nil
}
