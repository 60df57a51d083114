package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/omerda/jira-reminder/internal/issue"
)

// Store handles persistence of the notified-keys state file.
type Store struct {
	path string
}

// New creates a Store for the given state file path. A leading ~ is expanded
// to the home directory and parent directories are created as needed.
func New(path string) (*Store, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	return &Store{path: path}, nil
}

// Path returns the resolved state file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state from disk. A missing file yields an empty state.
func (s *Store) Load() (*issue.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return issue.NewState(), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var state issue.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}

	if state.Notified == nil {
		state.Notified = make(map[string]time.Time)
	}

	return &state, nil
}

// Save writes the state to disk with an updated timestamp.
func (s *Store) Save(state *issue.State) error {
	state.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	return nil
}
