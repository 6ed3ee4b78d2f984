package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_LoadMissingFile(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), "history"))

	if err := h.Load(); err != nil {
		t.Fatalf("Load() = %v, want nil for missing file", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_WriteAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history")

	h := NewHistory(path)

	for _, line := range []string{"4d6kh3", "2d20", ":seed 42"} {
		if _, err := h.Write(line); err != nil {
			t.Fatalf("Write(%q) = %v", line, err)
		}
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	// A fresh History reading the same file sees the same entries.
	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if reloaded.Len() != 3 {
		t.Fatalf("reloaded Len() = %d, want 3", reloaded.Len())
	}

	for i, want := range []string{"4d6kh3", "2d20", ":seed 42"} {
		got, err := reloaded.GetLine(i)
		if err != nil {
			t.Fatalf("GetLine(%d) = %v", i, err)
		}

		if got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestHistory_WriteDeduplicatesConsecutive(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), "history"))

	for _, line := range []string{"1d6", "1d6", "2d6", "1d6"} {
		if _, err := h.Write(line); err != nil {
			t.Fatalf("Write(%q) = %v", line, err)
		}
	}

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3 after consecutive duplicate", h.Len())
	}
}

func TestHistory_WriteIgnoresBlank(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), "history"))

	if _, err := h.Write("   "); err != nil {
		t.Fatalf("Write() = %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after blank write", h.Len())
	}
}

func TestHistory_LoadSkipsBlankLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history")

	if err := os.WriteFile(
		path, []byte("1d6\n\n  \n2d6\n"), defaultFileMode,
	); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}

func TestHistory_GetLineOutOfBounds(t *testing.T) {
	t.Parallel()

	h := NewHistory(filepath.Join(t.TempDir(), "history"))

	if _, err := h.Write("1d6"); err != nil {
		t.Fatal(err)
	}

	for _, index := range []int{-1, 1, 100} {
		if _, err := h.GetLine(index); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GetLine(%d) = %v, want ErrOutOfBounds", index, err)
		}
	}
}
