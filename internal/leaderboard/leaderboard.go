// Package leaderboard keeps the best score in a CSV file. A row is appended
// each time the best is beaten, so the file doubles as a record history.
package leaderboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"chosenoffset.com/scavenger/internal/core/gamestate"
	"chosenoffset.com/scavenger/internal/logging"
	"github.com/gocarina/gocsv"
)

// Entry is one CSV row.
type Entry struct {
	Score      int    `csv:"best_score"`
	PlayerName string `csv:"player_name"`
	RecordedAt int64  `csv:"recorded_at"` // unix seconds
}

// Store implements gamestate.ScoreStore on a CSV file. An empty path keeps
// scores in memory only.
type Store struct {
	path string
	best Entry
	log  logging.Logger
	now  func() time.Time
}

// Open creates a store for path and reads the current best. A missing or
// unreadable file starts from a zero record.
func Open(path string, log logging.Logger) *Store {
	if log == nil {
		log = logging.Noop()
	}
	s := &Store{
		path: path,
		log:  log.With(logging.String("component", "leaderboard")),
		now:  time.Now,
	}
	s.LoadBestScore()
	return s
}

// LoadBestScore returns the best record on file.
func (s *Store) LoadBestScore() gamestate.Record {
	if s.path != "" {
		entries, err := s.History()
		if err != nil {
			s.log.Warn("failed to read scores", logging.String("path", s.path), logging.Err(err))
		}
		for _, e := range entries {
			if e.Score > s.best.Score {
				s.best = e
			}
		}
	}
	return gamestate.Record{Score: s.best.Score, PlayerName: s.best.PlayerName}
}

// RecordScore stores score if it beats the best; otherwise it does nothing.
func (s *Store) RecordScore(score int, name string) error {
	if score <= s.best.Score {
		return nil
	}
	e := Entry{Score: score, PlayerName: name, RecordedAt: s.now().Unix()}
	if s.path != "" {
		if err := s.appendEntry(e); err != nil {
			return fmt.Errorf("failed to record score: %w", err)
		}
	}
	s.best = e
	s.log.Info("new best score", logging.Int("days", score), logging.String("player", name))
	return nil
}

// History returns every recorded best in file order.
func (s *Store) History() ([]Entry, error) {
	if s.path == "" {
		return nil, nil
	}
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	var entries []Entry
	if err := gocsv.UnmarshalFile(f, &entries); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) || errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *Store) appendEntry(e Entry) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating score directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	records := []Entry{e}
	if info.Size() == 0 {
		// First write includes headers
		err = gocsv.Marshal(records, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(records, f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
