// Package history persists the question/answer log as a JSON array file.
// Entries are append-only; each append rewrites the whole file, so a mutex
// serializes writers within the process. Failures are returned to the
// caller instead of being swallowed.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one logged interaction. Timestamp is an RFC 3339 string so the
// file stays human-readable and round-trips exactly.
type Entry struct {
	Timestamp   string `json:"timestamp"`
	Query       string `json:"query"`
	Answer      string `json:"answer"`
	Pages       []int  `json:"pages,omitempty"`
	ResultCount int    `json:"results_found"`
}

// NewEntry builds an entry stamped with the given time.
func NewEntry(now time.Time, query, answer string, pages []int, resultCount int) Entry {
	return Entry{
		Timestamp:   now.Format(time.RFC3339),
		Query:       query,
		Answer:      answer,
		Pages:       pages,
		ResultCount: resultCount,
	}
}

// Store reads and writes the history file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store for the given file path. The file is created on
// first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns all entries in insertion order. A missing file is an empty
// history, not an error.
func (s *Store) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return entries, nil
}

// Append adds an entry at the end of the log and writes the whole file
// back. Last write wins; there is no partial-write protection beyond the
// in-process mutex.
func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return s.write(entries)
}

// CheckWritable verifies an append would succeed, without touching the log
// content. An existing file is opened for append; a missing file is probed
// through its directory, so the check never leaves an empty history file
// behind that Load would reject.
func (s *Store) CheckWritable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		return f.Close()
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("history not writable: %w", err)
	}

	probe, err := os.CreateTemp(filepath.Dir(s.path), ".history-probe-*")
	if err != nil {
		return fmt.Errorf("history not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// Clear empties the log.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write([]Entry{})
}

func (s *Store) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
