package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/omerda/jira-reminder/internal/issue"
	"github.com/omerda/jira-reminder/internal/logger"
	"github.com/omerda/jira-reminder/internal/notifier"
)

// Searcher fetches the current set of issues matching a JQL query.
type Searcher interface {
	SearchIssues(ctx context.Context, jql string) ([]*issue.Issue, error)
}

// Store persists the notified-keys state between checks.
type Store interface {
	Load() (*issue.State, error)
	Save(state *issue.State) error
}

// Monitor runs the fetch → diff → notify → persist pipeline.
type Monitor struct {
	searcher    Searcher
	notifier    notifier.Notifier
	store       Store
	jql         string
	notifyClear bool
	now         func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithNotifyClear enables the all-clear message when the query transitions
// from having open tasks to empty.
func WithNotifyClear() Option {
	return func(m *Monitor) { m.notifyClear = true }
}

// New creates a Monitor.
func New(searcher Searcher, n notifier.Notifier, store Store, jql string, opts ...Option) *Monitor {
	m := &Monitor{
		searcher: searcher,
		notifier: n,
		store:    store,
		jql:      jql,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Result summarizes a single check.
type Result struct {
	CheckedAt  time.Time      `json:"checked_at"`
	TotalOpen  int            `json:"total_open"`
	NewIssues  []*issue.Issue `json:"new_issues"`
	Sent       bool           `json:"sent"`
	Suppressed bool           `json:"suppressed,omitempty"`
	Cleared    bool           `json:"cleared,omitempty"`
}

// Check runs one reminder cycle. A Jira failure aborts the check before any
// Telegram traffic happens. Issues are only marked notified after a delivered
// send, so suppressed or failed sends are retried on the next check.
func (m *Monitor) Check(ctx context.Context) (*Result, error) {
	log := logger.L()
	log.Info("checking jira for open tasks", zap.String("jql", m.jql))
	logger.IncrCounter("checks.total")

	start := m.now()
	current, err := m.searcher.SearchIssues(ctx, m.jql)
	if err != nil {
		return nil, fmt.Errorf("fetching issues: %w", err)
	}
	logger.RecordTiming("jira.search", m.now().Sub(start))
	logger.AddCounter("jira.issues_fetched", int64(len(current)))

	state, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	result := &Result{
		CheckedAt: m.now().UTC(),
		TotalOpen: len(current),
		NewIssues: make([]*issue.Issue, 0),
	}

	if len(current) == 0 {
		hadOpen := state.Len() > 0
		state.Clear()
		if err := m.store.Save(state); err != nil {
			return nil, fmt.Errorf("saving state: %w", err)
		}

		log.Info("all clean, no open tasks")
		result.Cleared = hadOpen

		if m.notifyClear && hadOpen {
			sent, err := m.notifier.NotifyAllClear(ctx)
			if err != nil {
				return nil, err
			}
			result.Sent = sent
		}
		return result, nil
	}

	diff := issue.Diff(state, current)
	result.NewIssues = diff.NewIssues

	if len(diff.NewIssues) > 0 {
		sent, err := m.notifier.Notify(ctx, diff.NewIssues)
		if err != nil {
			return nil, err
		}
		result.Sent = sent
		result.Suppressed = !sent
		if sent {
			state.Mark(m.now().UTC(), issue.Keys(diff.NewIssues)...)
		}
	} else {
		log.Info("open tasks already notified",
			zap.Int("open", len(current)),
			zap.Int("already_notified", diff.AlreadyNotified))
	}

	// Drop keys the query no longer returns so reopened issues re-notify
	state.Prune(diff.CurrentKeys)
	if err := m.store.Save(state); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}

	return result, nil
}

// Watch runs Check immediately and then on every interval tick until the
// context is cancelled. Per-check errors are logged and the loop continues.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration) error {
	if _, err := m.Check(ctx); err != nil {
		logger.L().Error("check failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.L().Info("watch loop stopping")
			return nil
		case <-ticker.C:
			if _, err := m.Check(ctx); err != nil {
				logger.L().Error("check failed", zap.Error(err))
			}
		}
	}
}
