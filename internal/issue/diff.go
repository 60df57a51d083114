package issue

import "sort"

// DiffResult contains the outcome of comparing a query result against the
// notified state.
type DiffResult struct {
	NewIssues       []*Issue // issues not yet notified, sorted by key
	AlreadyNotified int      // issues present in both the result and the state
	CurrentKeys     map[string]bool
}

// Diff splits the current issues into new and already-notified against the
// previous state. The state itself is not modified.
func Diff(previous *State, current []*Issue) *DiffResult {
	if previous == nil {
		previous = NewState()
	}

	result := &DiffResult{
		NewIssues:   make([]*Issue, 0),
		CurrentKeys: make(map[string]bool, len(current)),
	}

	for _, iss := range current {
		result.CurrentKeys[iss.Key] = true
		if previous.Has(iss.Key) {
			result.AlreadyNotified++
			continue
		}
		result.NewIssues = append(result.NewIssues, iss)
	}

	// Sort for deterministic message and output ordering
	sort.Slice(result.NewIssues, func(i, j int) bool {
		return result.NewIssues[i].Key < result.NewIssues[j].Key
	})

	return result
}

// Keys returns the keys of the given issues.
func Keys(issues []*Issue) []string {
	keys := make([]string, 0, len(issues))
	for _, iss := range issues {
		keys = append(keys, iss.Key)
	}
	return keys
}
