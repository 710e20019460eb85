// Package history persists chat history records to a local JSON file when the
// server-side save feature is enabled.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrUIDMismatch is returned when a record claims a different user than the
// presented identity token.
var ErrUIDMismatch = errors.New("record uid does not match token uid")

// Record is a single saved interaction.
type Record struct {
	UID         string `json:"uid,omitempty"`
	FeatureName string `json:"featureName,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	Output      string `json:"output,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	SavedAt     string `json:"serverSavedAt"`
}

// Store appends records to a JSON file, one array per file. Writes are
// serialized; the file is rewritten atomically via a temp file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store writing to path. The parent directory is created
// on first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Append verifies the record's uid against tokenUID when both are present,
// stamps the server save time, and persists the record.
func (s *Store) Append(rec Record, tokenUID string) error {
	if rec.UID != "" && tokenUID != "" && rec.UID != tokenUID {
		return ErrUIDMismatch
	}
	if rec.UID == "" {
		rec.UID = tokenUID
	}
	rec.SavedAt = time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}
	records = append(records, rec)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Load reads all saved records. A missing file is an empty history.
func (s *Store) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return records, nil
}
