// Package history persists per-user monthly conversation logs as flat
// JSON files under <base>/<user_id>/<YYYY-MM>/history.json.
package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ShakhCo/trading-bot/internal/domain"
)

const logFileName = "history.json"

type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) path(userID int64, now time.Time) string {
	return filepath.Join(s.baseDir, strconv.FormatInt(userID, 10), now.Format("2006-01"), logFileName)
}

// ReadAll returns the user's full log for now's calendar month, in
// insertion order. A missing, empty, or unparseable file reads back as an
// empty log; corruption is logged but never propagated.
func (s *Store) ReadAll(userID int64, now time.Time) []domain.Record {
	data, err := os.ReadFile(s.path(userID, now))
	if err != nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("history file unreadable, treating as empty", "user_id", userID, "error", err)
		return nil
	}
	return records
}

// Append adds one record to the user's current-month log, creating the
// storage location on first write.
func (s *Store) Append(userID int64, now time.Time, rec domain.Record) error {
	records := s.ReadAll(userID, now)
	records = append(records, rec)

	p := s.path(userID, now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
