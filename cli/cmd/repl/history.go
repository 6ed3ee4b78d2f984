package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ardnew/roll/lang"
)

// baseHistory is the file name of the session history within the
// cache directory.
const baseHistory = "history"

const defaultFileMode = 0o600

// History records the lines entered during interactive sessions,
// persisted one line per entry. It is safe for concurrent use.
type History struct {
	mu      sync.Mutex
	path    string
	entries []string
}

// NewHistory returns a History backed by the file at path. The file is
// not opened until [History.Load] or [History.Write] is called.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads all persisted entries, replacing any held in memory.
// A missing history file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.entries = nil

			return nil
		}

		return lang.WrapError(err).With(slog.String("path", h.path))
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, line)
	}

	if err := scanner.Err(); err != nil {
		return lang.WrapError(err).With(slog.String("path", h.path))
	}

	return nil
}

// Write appends line to the history in memory and on disk. Writing the
// same line twice in a row records it once.
func (h *History) Write(line string) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return 0, nil
	}

	h.entries = append(h.entries, line)

	file, err := os.OpenFile(
		h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultFileMode,
	)
	if err != nil {
		return 0, lang.WrapError(err).With(slog.String("path", h.path))
	}
	defer file.Close()

	return file.WriteString(line + "\n")
}

// Len returns the number of entries held in memory.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// GetLine returns the entry at index, oldest first.
func (h *History) GetLine(index int) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 0 || index >= len(h.entries) {
		return "", ErrOutOfBounds.With(
			slog.Int("index", index),
			slog.Int("length", len(h.entries)),
		)
	}

	return h.entries[index], nil
}
