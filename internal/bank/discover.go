package bank

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Entry names a bank file found under a categories directory.
type Entry struct {
	Path     string
	Category string
	Format   Format
}

// Discover walks dir and returns every bank file with a supported extension,
// sorted by category. A missing directory yields no entries.
func Discover(dir string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		format, err := FormatFor(path)
		if err != nil {
			return nil
		}
		category, err := CategoryName(dir, path)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Path: path, Category: category, Format: format})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category == entries[j].Category {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].Category < entries[j].Category
	})
	return entries, nil
}

// CategoryName derives a slash-separated category from a bank path relative
// to root, without its extension.
func CategoryName(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel), nil
}
