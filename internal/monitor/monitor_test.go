package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/omerda/jira-reminder/internal/issue"
)

type fakeSearcher struct {
	issues []*issue.Issue
	err    error
	calls  int
}

func (f *fakeSearcher) SearchIssues(_ context.Context, _ string) ([]*issue.Issue, error) {
	f.calls++
	return f.issues, f.err
}

type fakeStore struct {
	state   *issue.State
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStore) Load() (*issue.State, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.state == nil {
		f.state = issue.NewState()
	}
	return f.state, nil
}

func (f *fakeStore) Save(state *issue.State) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.state = state
	return nil
}

type fakeNotifier struct {
	delivered     bool
	err           error
	notifyCalls   int
	allClearCalls int
	gotIssues     []*issue.Issue
}

func (f *fakeNotifier) Notify(_ context.Context, issues []*issue.Issue) (bool, error) {
	f.notifyCalls++
	f.gotIssues = issues
	return f.delivered, f.err
}

func (f *fakeNotifier) NotifyAllClear(_ context.Context) (bool, error) {
	f.allClearCalls++
	return f.delivered, f.err
}

func makeIssues(keys ...string) []*issue.Issue {
	issues := make([]*issue.Issue, 0, len(keys))
	for _, key := range keys {
		issues = append(issues, &issue.Issue{Key: key, Summary: "Task " + key})
	}
	return issues
}

func TestCheck_JiraFailurePreventsNotification(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("connection refused")}
	n := &fakeNotifier{delivered: true}
	store := &fakeStore{}

	m := New(searcher, n, store, "project = PROJ")

	if _, err := m.Check(context.Background()); err == nil {
		t.Fatal("Check() should fail when Jira is unreachable")
	}
	if n.notifyCalls != 0 || n.allClearCalls != 0 {
		t.Error("no Telegram call may happen after a failed Jira call")
	}
	if store.saves != 0 {
		t.Error("state must not be saved after a failed Jira call")
	}
}

func TestCheck_NewIssuesNotifiedAndMarked(t *testing.T) {
	searcher := &fakeSearcher{issues: makeIssues("PROJ-1", "PROJ-2")}
	n := &fakeNotifier{delivered: true}
	store := &fakeStore{}

	m := New(searcher, n, store, "project = PROJ")

	result, err := m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}

	if n.notifyCalls != 1 {
		t.Fatalf("Notify called %d times, want 1", n.notifyCalls)
	}
	if len(n.gotIssues) != 2 {
		t.Errorf("Notify received %d issues, want 2", len(n.gotIssues))
	}
	if !result.Sent {
		t.Error("result should report sent")
	}
	if !store.state.Has("PROJ-1") || !store.state.Has("PROJ-2") {
		t.Error("sent issues should be marked notified")
	}
	if store.saves != 1 {
		t.Errorf("state saved %d times, want 1", store.saves)
	}
}

func TestCheck_AlreadyNotifiedNotResent(t *testing.T) {
	state := issue.NewState()
	state.Mark(time.Now(), "PROJ-1", "PROJ-2")

	searcher := &fakeSearcher{issues: makeIssues("PROJ-1", "PROJ-2")}
	n := &fakeNotifier{delivered: true}
	store := &fakeStore{state: state}

	m := New(searcher, n, store, "project = PROJ")

	result, err := m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}

	if n.notifyCalls != 0 {
		t.Error("already-notified issues must not be re-sent")
	}
	if len(result.NewIssues) != 0 {
		t.Errorf("result reports %d new issues, want 0", len(result.NewIssues))
	}
	if result.TotalOpen != 2 {
		t.Errorf("result.TotalOpen = %d, want 2", result.TotalOpen)
	}
}

func TestCheck_EmptyResultClearsStateWithoutSending(t *testing.T) {
	state := issue.NewState()
	state.Mark(time.Now(), "PROJ-1")

	searcher := &fakeSearcher{issues: nil}
	n := &fakeNotifier{delivered: true}
	store := &fakeStore{state: state}

	m := New(searcher, n, store, "project = PROJ")

	result, err := m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}

	if n.notifyCalls != 0 || n.allClearCalls != 0 {
		t.Error("empty result should not send anything by default")
	}
	if store.state.Len() != 0 {
		t.Error("empty result should clear the notified state")
	}
	if !result.Cleared {
		t.Error("result should report the transition to clear")
	}
}

func TestCheck_NotifyClearSendsOnTransition(t *testing.T) {
	state := issue.NewState()
	state.Mark(time.Now(), "PROJ-1")

	searcher := &fakeSearcher{issues: nil}
	n := &fakeNotifier{delivered: true}
	store := &fakeStore{state: state}

	m := New(searcher, n, store, "project = PROJ", WithNotifyClear())

	if _, err := m.Check(context.Background()); err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}
	if n.allClearCalls != 1 {
		t.Errorf("NotifyAllClear called %d times, want 1", n.allClearCalls)
	}

	// Second empty check: state already clear, no repeat message
	if _, err := m.Check(context.Background()); err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}
	if n.allClearCalls != 1 {
		t.Errorf("NotifyAllClear called %d times after second check, want still 1", n.allClearCalls)
	}
}

func TestCheck_SuppressedSendNotMarked(t *testing.T) {
	searcher := &fakeSearcher{issues: makeIssues("PROJ-1")}
	n := &fakeNotifier{delivered: false} // e.g. outside work hours
	store := &fakeStore{}

	m := New(searcher, n, store, "project = PROJ")

	result, err := m.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}

	if result.Sent {
		t.Error("suppressed send should not report sent")
	}
	if !result.Suppressed {
		t.Error("result should report suppression")
	}
	if store.state.Has("PROJ-1") {
		t.Error("suppressed issues must not be marked notified")
	}
}

func TestCheck_NotifierErrorLeavesStateUnsaved(t *testing.T) {
	searcher := &fakeSearcher{issues: makeIssues("PROJ-1")}
	n := &fakeNotifier{err: errors.New("telegram down")}
	store := &fakeStore{}

	m := New(searcher, n, store, "project = PROJ")

	if _, err := m.Check(context.Background()); err == nil {
		t.Fatal("Check() should surface the notifier error")
	}
	if store.saves != 0 {
		t.Error("state must not be saved when the send fails")
	}
}

func TestCheck_PrunesResolvedKeys(t *testing.T) {
	state := issue.NewState()
	state.Mark(time.Now(), "PROJ-1", "PROJ-2")

	// PROJ-2 was resolved; only PROJ-1 still open
	searcher := &fakeSearcher{issues: makeIssues("PROJ-1")}
	n := &fakeNotifier{delivered: true}
	store := &fakeStore{state: state}

	m := New(searcher, n, store, "project = PROJ")

	if _, err := m.Check(context.Background()); err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}

	if store.state.Has("PROJ-2") {
		t.Error("resolved key should be pruned from state")
	}
	if !store.state.Has("PROJ-1") {
		t.Error("still-open key should remain in state")
	}
}

func TestWatch_StopsOnContextCancel(t *testing.T) {
	searcher := &fakeSearcher{issues: nil}
	n := &fakeNotifier{}
	store := &fakeStore{}

	m := New(searcher, n, store, "project = PROJ")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Watch(ctx, 10*time.Millisecond)
	}()

	// Let at least the immediate check and one tick happen
	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch() did not stop after context cancellation")
	}

	if searcher.calls < 2 {
		t.Errorf("Watch() ran %d checks, want at least 2", searcher.calls)
	}
}

func TestWatch_ContinuesAfterCheckError(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("flaky")}
	n := &fakeNotifier{}
	store := &fakeStore{}

	m := New(searcher, n, store, "project = PROJ")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Watch(ctx, 10*time.Millisecond)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()
	<-done

	if searcher.calls < 2 {
		t.Errorf("Watch() should keep checking after errors, ran %d checks", searcher.calls)
	}
}
