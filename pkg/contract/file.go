package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// File is a contract loaded from disk.
type File struct {
	Path     string
	Contract *Contract
}

// Load reads and validates the contract stored at path.
func Load(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contract %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadGlob loads every contract matching pattern, in lexical path order.
// Patterns containing ** match recursively.
func LoadGlob(pattern string) ([]File, error) {
	paths, err := ExpandGlob(pattern)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(paths))
	for _, path := range paths {
		c, err := Load(path)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: path, Contract: c})
	}
	return files, nil
}

// ExpandGlob returns the regular files matching pattern, sorted.
func ExpandGlob(pattern string) ([]string, error) {
	var (
		matches []string
		err     error
	)
	if strings.Contains(pattern, "**") {
		matches, err = doublestar.FilepathGlob(pattern)
	} else {
		matches, err = filepath.Glob(pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	sort.Strings(matches)

	paths := matches[:0]
	for _, path := range matches {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Write stores the contract in dir under FileName, replacing any existing
// file atomically. It returns the written path.
func (c *Contract) Write(dir string) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	data, err := c.Marshal()
	if err != nil {
		return "", fmt.Errorf("encoding contract: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating contract directory: %w", err)
	}

	path := filepath.Join(dir, c.FileName())
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing contract: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("writing contract: %w", err)
	}
	return path, nil
}
