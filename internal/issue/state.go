package issue

import "time"

// State tracks which issue keys have already been notified, persisted between
// runs so every check only reminds about keys it has not sent before.
type State struct {
	Notified  map[string]time.Time `json:"notified"`   // key → when first notified
	UpdatedAt string               `json:"updated_at"` // RFC3339 timestamp
}

// NewState creates an empty state.
func NewState() *State {
	return &State{
		Notified: make(map[string]time.Time),
	}
}

// Has reports whether the key has already been notified.
func (s *State) Has(key string) bool {
	_, ok := s.Notified[key]
	return ok
}

// Mark records keys as notified at the given time.
func (s *State) Mark(now time.Time, keys ...string) {
	for _, key := range keys {
		if _, ok := s.Notified[key]; !ok {
			s.Notified[key] = now
		}
	}
}

// Prune drops keys that are no longer present in the current result, so a key
// that is resolved and later reopened triggers a fresh reminder.
func (s *State) Prune(currentKeys map[string]bool) {
	for key := range s.Notified {
		if !currentKeys[key] {
			delete(s.Notified, key)
		}
	}
}

// Clear removes all notified keys.
func (s *State) Clear() {
	s.Notified = make(map[string]time.Time)
}

// Len returns the number of notified keys.
func (s *State) Len() int {
	return len(s.Notified)
}
