package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

var header = []string{"unix_time", "participant_id", "round_index", "hashtag", "prompt"}

// CSVStore appends records to a single CSV file. The header row is
// written once, when the file is first created; an existing dataset is
// never overwritten or truncated.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

func NewCSVStore(path string) (*CSVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure dataset dir: %w", err)
	}
	return &CSVStore{path: path}, nil
}

// Append durably writes one record. The full row is encoded in memory
// first and written with a single call, so a failed append never
// leaves a partial row behind.
func (s *CSVStore) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHeader(); err != nil {
		return err
	}
	row, err := encodeRow(rec)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	if _, err := f.Write(row); err != nil {
		_ = f.Close()
		return fmt.Errorf("append row: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close after append: %w", err)
	}
	return nil
}

// ensureHeader creates the dataset with its header row iff it does not
// exist yet. Idempotent; caller holds the lock.
func (s *CSVStore) ensureHeader() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat dataset: %w", err)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func encodeRow(rec Record) ([]byte, error) {
	unix := float64(rec.Timestamp.UnixNano()) / 1e9
	fields := []string{
		strconv.FormatFloat(unix, 'f', 6, 64),
		rec.ParticipantID,
		strconv.Itoa(rec.RoundIndex),
		rec.Hashtag,
		rec.Prompt,
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	return buf.Bytes(), nil
}
