package score

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"qm/internal/verbose"
)

const (
	historyExt = ".jsonl"
	legacyExt  = ".json"
)

// History stores score records as one JSON Lines file per category under dir.
type History struct {
	dir string
	log *verbose.Logger

	mu    sync.Mutex
	files map[string]*sync.Mutex
}

// NewHistory returns a history rooted at dir. The directory is created on
// the first append.
func NewHistory(dir string, log *verbose.Logger) *History {
	return &History{dir: dir, log: log, files: map[string]*sync.Mutex{}}
}

// Dir returns the history root.
func (h *History) Dir() string { return h.dir }

// Path returns the history file for category.
func (h *History) Path(category string) (string, error) {
	return h.categoryPath(category, historyExt)
}

func (h *History) categoryPath(category, ext string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCategory)
	}
	clean := filepath.Clean(filepath.FromSlash(category))
	if filepath.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return filepath.Join(h.dir, clean+ext), nil
}

func (h *History) fileLock(path string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	lock, ok := h.files[path]
	if !ok {
		lock = &sync.Mutex{}
		h.files[path] = lock
	}
	return lock
}

// Append adds rec to its category file. Each record is written with a
// single write under an exclusive lock, so concurrent appends from
// goroutines or processes never interleave. Prior records are never touched.
func (h *History) Append(rec Record) error {
	path, err := h.Path(rec.Category)
	if err != nil {
		return &HistoryWriteError{Path: rec.Category, Record: rec, Err: err}
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return &HistoryWriteError{Path: path, Record: rec, Err: err}
	}
	payload = append(payload, '\n')

	lock := h.fileLock(path)
	lock.Lock()
	defer lock.Unlock()
	if err := appendLocked(path, payload); err != nil {
		h.log.Logf(verbose.StyleError, "history append failed %s: %v", path, err)
		return &HistoryWriteError{Path: path, Record: rec, Err: err}
	}
	h.log.Logf(verbose.StyleEvent, "history appended %s: %d/%d correct", path, rec.Correct, rec.Total)
	return nil
}

func appendLocked(path string, payload []byte) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()
	if err := lockFile(file, true); err != nil {
		return fmt.Errorf("lock: %w", err)
	}
	defer func() {
		if unlockErr := unlockFile(file); err == nil && unlockErr != nil {
			err = fmt.Errorf("unlock: %w", unlockErr)
		}
	}()
	sealed, err := unterminated(file)
	if err != nil {
		return err
	}
	if sealed {
		payload = append([]byte{'\n'}, payload...)
	}
	written, err := file.Write(payload)
	if err != nil {
		return err
	}
	if written != len(payload) {
		return fmt.Errorf("short write: %d of %d bytes", written, len(payload))
	}
	return file.Sync()
}

// unterminated reports whether file ends in a partial line left by an
// interrupted writer. The caller holds the exclusive lock.
func unterminated(file *os.File) (bool, error) {
	info, err := file.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("read tail: %w", err)
	}
	return last[0] != '\n', nil
}

// Read returns every record for category in append order: entries from a
// legacy JSON array file first, then the JSON Lines history.
func (h *History) Read(category string) ([]Record, error) {
	legacyPath, err := h.categoryPath(category, legacyExt)
	if err != nil {
		return nil, err
	}
	path, err := h.Path(category)
	if err != nil {
		return nil, err
	}
	records, err := readLegacy(legacyPath, category)
	if err != nil {
		return nil, err
	}
	lines, err := h.readLines(path, category)
	if err != nil {
		return nil, err
	}
	return append(records, lines...), nil
}

// Last returns the newest n records for category; n <= 0 returns all.
func (h *History) Last(category string, n int) ([]Record, error) {
	records, err := h.Read(category)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

// Categories lists every category with a history file, sorted.
func (h *History) Categories() ([]string, error) {
	seen := map[string]bool{}
	err := filepath.WalkDir(h.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == h.dir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != historyExt && ext != legacyExt {
			return nil
		}
		rel, err := filepath.Rel(h.dir, strings.TrimSuffix(path, ext))
		if err != nil {
			return err
		}
		seen[filepath.ToSlash(rel)] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

// readLines decodes a JSON Lines history. Lines that do not decode are
// partial writes sealed by a later append, or a torn tail; they are skipped.
func (h *History) readLines(path, category string) ([]Record, error) {
	data, err := readShared(path)
	if err != nil || data == nil {
		return nil, err
	}
	lines := bytes.Split(data, []byte("\n"))
	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		record, err := decodeRecord(line, category)
		if err != nil {
			h.log.Logf(verbose.StyleError, "history skipped %s:%d: %v", path, i+1, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func readLegacy(path, category string) ([]Record, error) {
	data, err := readShared(path)
	if err != nil || data == nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("read legacy scores %s: %w", path, err)
	}
	records := make([]Record, 0, len(entries))
	for i, entry := range entries {
		record, err := decodeRecord(entry, category)
		if err != nil {
			return nil, fmt.Errorf("read legacy scores %s: entry %d: %w", path, i+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// readShared returns the file content under a shared lock, or nil when the
// file does not exist.
func readShared(path string) (data []byte, err error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err := lockFile(file, false); err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	defer unlockFile(file)
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return []byte{}, nil
	}
	return buf.Bytes(), nil
}
