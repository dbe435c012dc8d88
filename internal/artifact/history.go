package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperrors "github.com/alexisbeaulieu97/architect/pkg/errors"
)

// DefaultHistoryLimit is how many components are kept when no limit is set.
const DefaultHistoryLimit = 10

const historyVersion = "1.0"

// HistoryFile is the on-disk history document.
type HistoryFile struct {
	Version string      `json:"version"`
	Entries []Component `json:"entries"`
}

// History keeps the most recent components, newest first, and persists them
// as JSON. An empty path keeps the history in memory only.
type History struct {
	path    string
	limit   int
	mu      sync.RWMutex
	version string
	entries []Component
}

// NewHistory creates a History and loads it from path when the file exists.
func NewHistory(path string, limit int) (*History, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h := &History{
		path:    path,
		limit:   limit,
		version: historyVersion,
		entries: []Component{},
	}
	if path == "" {
		return h, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	if err := h.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return h, nil
}

// Load replaces the in-memory entries with the file contents. Entries beyond
// the limit are dropped.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	data, err := os.ReadFile(h.path)
	if err != nil {
		return err
	}

	var file HistoryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return apperrors.NewParseError(h.path, 0, fmt.Errorf("failed to parse history: %w", err))
	}

	if file.Version != "" {
		h.version = file.Version
	}
	h.entries = file.Entries
	if h.entries == nil {
		h.entries = []Component{}
	}
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
	return nil
}

// Save writes the history atomically through a temporary file.
func (h *History) Save() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.path == "" {
		return nil
	}

	file := HistoryFile{
		Version: h.version,
		Entries: h.entries,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tmpPath := h.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, h.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Path returns the backing file, or "" for an in-memory history.
func (h *History) Path() string {
	return h.path
}

// Limit returns the capacity.
func (h *History) Limit() int {
	return h.limit
}

// Push adds c as the newest entry and returns any entries evicted to stay
// within the limit.
func (h *History) Push(c Component) []Component {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]Component{c}, h.entries...)
	if len(h.entries) <= h.limit {
		return nil
	}

	evicted := append([]Component(nil), h.entries[h.limit:]...)
	h.entries = h.entries[:h.limit]
	return evicted
}

// List returns the entries, newest first.
func (h *History) List() []Component {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]Component, len(h.entries))
	copy(result, h.entries)
	return result
}

// Latest returns the newest entry.
func (h *History) Latest() (Component, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.entries) == 0 {
		return Component{}, false
	}
	return h.entries[0], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Get resolves ref to an entry. ref may be a full ID, a unique ID prefix, a
// slug (the newest entry with that slug wins) or `@N` for the N-th newest.
func (h *History) Get(ref string) (Component, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i, err := h.find(ref)
	if err != nil {
		return Component{}, err
	}
	return h.entries[i], nil
}

// Remove deletes the entry ref resolves to and returns it.
func (h *History) Remove(ref string) (Component, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i, err := h.find(ref)
	if err != nil {
		return Component{}, err
	}
	removed := h.entries[i]
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
	return removed, nil
}

// Clear removes every entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = []Component{}
}

func (h *History) find(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, apperrors.NewLookupError(ref)
	}

	for i, c := range h.entries {
		if c.ID == ref {
			return i, nil
		}
	}

	match := -1
	for i, c := range h.entries {
		if strings.HasPrefix(c.ID, ref) {
			if match >= 0 {
				return -1, apperrors.NewAmbiguousLookupError(ref)
			}
			match = i
		}
	}
	if match >= 0 {
		return match, nil
	}

	for i, c := range h.entries {
		if c.Slug == ref {
			return i, nil
		}
	}

	if pos, ok := parsePosition(ref); ok && pos <= len(h.entries) {
		return pos - 1, nil
	}

	return -1, apperrors.NewLookupError(ref)
}

func parsePosition(ref string) (int, bool) {
	if ref[0] != '@' {
		return 0, false
	}
	n := 0
	for _, r := range ref[1:] {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, n > 0 && len(ref) > 1
}
