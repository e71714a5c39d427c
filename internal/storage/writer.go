package storage

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/qepting91/reddit-video-feed/internal/domain"
)

// WriterService is the only writer of the served-video journal; handlers
// hand it records over a channel.
type WriterService struct {
	FilePath string
	Logger   *slog.Logger
}

func (w *WriterService) Start(wg *sync.WaitGroup, input <-chan domain.VideoRecord) {
	defer wg.Done()
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(w.FilePath), 0o755); err != nil {
		logger.Error("Journal directory unavailable", "path", w.FilePath, "err", err)
		drain(input)
		return
	}
	f, err := os.OpenFile(w.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Error("Journal unavailable", "path", w.FilePath, "err", err)
		drain(input)
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)

	for rec := range input {
		// Write as NDJSON
		if err := enc.Encode(rec); err != nil {
			logger.Warn("Journal write failed", "id", rec.ID, "err", err)
		}
	}
}

// LoadJournal reads every record back, skipping lines that do not parse.
// A missing file is an empty journal.
func LoadJournal(path string) ([]domain.VideoRecord, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []domain.VideoRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec domain.VideoRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, scanner.Err()
}

func drain(input <-chan domain.VideoRecord) {
	for range input {
	}
}
