// Package history exports chat transcripts.
//
// Conversations live only in memory for the life of a session. A Transcript
// is a snapshot of one conversation taken for download or for writing to
// the export directory.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/diogo/bharatgpt/internal/models"
)

const maxTitleLen = 50

// Transcript is a snapshot of a conversation
type Transcript struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Model     string           `json:"model"`
	CreatedAt time.Time        `json:"created_at"`
	Messages  []models.Message `json:"messages"`
}

// NewTranscript snapshots msgs. The title is taken from the first user
// message.
func NewTranscript(model string, msgs []models.Message) *Transcript {
	now := time.Now()
	t := &Transcript{
		ID:        uuid.NewString(),
		Title:     fmt.Sprintf("BharatGPT chat %s", now.Format("2006-01-02 15:04")),
		Model:     model,
		CreatedAt: now,
		Messages:  append([]models.Message(nil), msgs...),
	}

	for _, m := range msgs {
		if m.IsUser() {
			t.Title = titleFrom(m.Content)
			break
		}
	}
	return t
}

func titleFrom(content string) string {
	title := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(title) <= maxTitleLen {
		return title
	}
	runes := []rune(title)
	return string(runes[:maxTitleLen]) + "..."
}

// FileName returns the export file name for format f
func (t *Transcript) FileName(f ExportFormat) string {
	short := t.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("bharatgpt-%s-%s%s", t.CreatedAt.Format("20060102-150405"), short, f.Extension())
}

// Store writes transcript exports into a directory
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates the export directory if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the export directory
func (s *Store) Dir() string {
	return s.dir
}

// Save exports t in format f and returns the written path
func (s *Store) Save(t *Transcript, f ExportFormat) (string, error) {
	data, err := t.Export(f)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, t.FileName(f))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
