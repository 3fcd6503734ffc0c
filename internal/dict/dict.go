// internal/dict/dict.go
//
// Dictionary management for the solver.
//
// Responsibilities:
//   - Normalize and validate Russian five-letter words (ё folds to е,
//     hyphens and inner spaces are dropped, everything lowercased).
//   - Load the word list from a plain-text file, one word per line,
//     deduplicated and sorted.
//   - Persist add/remove edits through an atomic temp-file rewrite.
//
// The solver core always receives an immutable snapshot from Load;
// edits never touch a running session.

package dict

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WordLen is the fixed word length of the game.
const WordLen = 5

// alphabet is the normalized Russian alphabet (no ё: it folds to е).
const alphabet = "абвгдежзийклмнопрстуфхцчшщъыьэюя"

var letterSet = func() map[rune]struct{} {
	m := make(map[rune]struct{}, len(alphabet))
	for _, r := range alphabet {
		m[r] = struct{}{}
	}
	return m
}()

var (
	// ErrInvalidWord means the word does not normalize to exactly five
	// letters of the Russian alphabet.
	ErrInvalidWord = errors.New("dict: not a valid five-letter word")

	// ErrWordExists is reported when adding a word already present.
	ErrWordExists = errors.New("dict: word already in dictionary")

	// ErrWordNotFound is reported when removing an absent word.
	ErrWordNotFound = errors.New("dict: word not in dictionary")
)

// Store is the persistence interface for the word list.
// Implementations: FileStore (plain text) and SQLStore (sqlite).
type Store interface {
	// Load returns the full, sorted, deduplicated word list.
	// The returned slice is a fresh snapshot on every call.
	Load(ctx context.Context) ([]string, error)

	// Add validates, normalizes and persists a new word.
	Add(ctx context.Context, word string) error

	// Remove deletes a word from the dictionary.
	Remove(ctx context.Context, word string) error
}

// Normalize lowercases a word, folds ё to е and strips hyphens,
// spaces and surrounding whitespace.
func Normalize(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	w = strings.ReplaceAll(w, "ё", "е")
	w = strings.ReplaceAll(w, "-", "")
	return strings.ReplaceAll(w, " ", "")
}

// IsValid reports whether w (already normalized) is exactly five
// letters of the normalized Russian alphabet.
func IsValid(w string) bool {
	runes := []rune(w)
	if len(runes) != WordLen {
		return false
	}
	for _, r := range runes {
		if _, ok := letterSet[r]; !ok {
			return false
		}
	}
	return true
}

// DefaultPath is where the dictionary lives unless configured
// otherwise: ~/.local/share/wordle/russian_five_letter_words.txt.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "russian_five_letter_words.txt"
	}
	return filepath.Join(home, ".local", "share", "wordle", "russian_five_letter_words.txt")
}

// FileStore keeps the dictionary in a UTF-8 text file, one word per
// line. All edits rewrite the file atomically.
type FileStore struct {
	path string
}

// NewFileStore constructs a FileStore for the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the word list. Invalid lines are skipped, duplicates
// collapsed, and the result is sorted. A missing file surfaces as an
// fs.ErrNotExist-wrapped error so callers can fall back to defaults.
func (s *FileStore) Load(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	set := map[string]struct{}{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := Normalize(sc.Text())
		if IsValid(w) {
			set[w] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return sortedWords(set), nil
}

// Add persists a new word. Returns ErrInvalidWord or ErrWordExists.
func (s *FileStore) Add(ctx context.Context, word string) error {
	w := Normalize(word)
	if !IsValid(w) {
		return fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	words, err := s.loadOrEmpty(ctx)
	if err != nil {
		return err
	}
	for _, x := range words {
		if x == w {
			return fmt.Errorf("%w: %q", ErrWordExists, w)
		}
	}
	words = append(words, w)
	sort.Strings(words)
	return s.save(words)
}

// Remove deletes a word. Returns ErrWordNotFound if absent.
func (s *FileStore) Remove(ctx context.Context, word string) error {
	w := Normalize(word)
	words, err := s.loadOrEmpty(ctx)
	if err != nil {
		return err
	}
	kept := words[:0]
	found := false
	for _, x := range words {
		if x == w {
			found = true
			continue
		}
		kept = append(kept, x)
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrWordNotFound, w)
	}
	return s.save(kept)
}

// loadOrEmpty treats a missing file as an empty dictionary so that the
// first Add can bootstrap it.
func (s *FileStore) loadOrEmpty(ctx context.Context) ([]string, error) {
	words, err := s.Load(ctx)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return words, err
}

// save rewrites the file through a temp file then renames it into
// place, so a crash mid-write cannot truncate the dictionary.
func (s *FileStore) save(words []string) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	w := bufio.NewWriter(f)
	for _, word := range words {
		if _, err := w.WriteString(word + "\n"); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("write %s: %w", tmp, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func sortedWords(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
