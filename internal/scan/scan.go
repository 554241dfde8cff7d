// Package scan maps image files in a directory to key indices by file name.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/directive"
	"github.com/bianoble/deck-profile/internal/paths"
	"github.com/bianoble/deck-profile/internal/selector"
)

// Mapping assigns one file to a key.
type Mapping struct {
	Key  int    `json:"key" yaml:"key"`
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size_bytes" yaml:"size_bytes"`
}

// Invalid is a file whose name fits the pattern but cannot be used.
type Invalid struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result is the outcome of a directory scan.
type Result struct {
	Dir       string    `json:"dir" yaml:"dir"`
	Mappings  []Mapping `json:"mappings" yaml:"mappings"` // sorted by key
	Unmatched []string  `json:"unmatched" yaml:"unmatched"`
	Invalid   []Invalid `json:"invalid" yaml:"invalid"`
}

// Scanner scans directories for key images.
type Scanner struct {
	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Directory scans dir with the default Scanner.
func Directory(dir, pattern string, keyCount int) (*Result, error) {
	return (&Scanner{}).Scan(dir, pattern, keyCount)
}

// Scan matches the regular files directly inside dir against pattern, a
// file name containing "{index}" such as "key-{index}.png". The index may
// be zero-padded. Indices at or above keyCount are reported as invalid and
// a later file for the same key replaces an earlier one.
func (s *Scanner) Scan(dir, pattern string, keyCount int) (*Result, error) {
	prefix, suffix, err := splitPattern(pattern)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("directory not found: %s", dir)
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	names, err := doublestar.Glob(os.DirFS(dir), "*", doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	sort.Strings(names)

	glob := escapeMeta(prefix) + "*" + escapeMeta(suffix)
	log := s.logger()
	res := &Result{Dir: dir}
	byKey := make(map[int]Mapping)

	for _, name := range names {
		path := filepath.Join(dir, name)
		key, ok := extractIndex(name, glob, prefix, suffix)
		if !ok {
			res.Unmatched = append(res.Unmatched, path)
			continue
		}
		if key >= keyCount {
			res.Invalid = append(res.Invalid, Invalid{
				Path:   path,
				Reason: fmt.Sprintf("key %d out of range (max %d)", key, keyCount-1),
			})
			continue
		}

		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading file info for %s: %w", path, err)
		}
		if prev, ok := byKey[key]; ok {
			log.Warn("duplicate key index, using later file", "key", key, "previous", prev.Path, "path", path)
		}
		byKey[key] = Mapping{Key: key, Path: path, Size: fi.Size()}
	}

	for _, m := range byKey {
		res.Mappings = append(res.Mappings, m)
	}
	sort.Slice(res.Mappings, func(i, j int) bool { return res.Mappings[i].Key < res.Mappings[j].Key })

	log.Debug("scanned directory",
		"dir", dir,
		"matched", len(res.Mappings),
		"unmatched", len(res.Unmatched),
		"invalid", len(res.Invalid))
	return res, nil
}

// Entries turns the mappings into single-key image entries. Paths are
// written relative to baseDir when possible so the profile stays movable
// with its images.
func (r *Result) Entries(baseDir string) ([]config.Entry, error) {
	resolver := paths.NewResolver(baseDir)
	entries := make([]config.Entry, 0, len(r.Mappings))
	for _, m := range r.Mappings {
		raw := m.Path
		if abs, err := filepath.Abs(m.Path); err == nil {
			if rel, err := filepath.Rel(baseDir, abs); err == nil && !strings.HasPrefix(rel, "..") {
				raw = filepath.ToSlash(rel)
			}
		}
		resolved, err := resolver.Resolve(raw)
		if err != nil {
			return nil, err
		}
		sel := selector.Single{Index: m.Key}
		entries = append(entries, config.Entry{
			Raw:       sel.String(),
			Selector:  sel,
			Directive: directive.Image{Path: resolved},
		})
	}
	return entries, nil
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// splitPattern returns the text around the index placeholder. A width
// width hint such as "{index:02d}" is accepted and ignored.
func splitPattern(pattern string) (prefix, suffix string, err error) {
	if strings.ContainsAny(pattern, `/\`) {
		return "", "", fmt.Errorf("invalid pattern '%s': must be a file name without directories", pattern)
	}
	parts := strings.Split(pattern, "{index")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid pattern '%s': must contain {index} exactly once", pattern)
	}
	_, suffix, ok := strings.Cut(parts[1], "}")
	if !ok {
		return "", "", fmt.Errorf("invalid pattern '%s': unclosed {index placeholder", pattern)
	}
	return parts[0], suffix, nil
}

func extractIndex(name, glob, prefix, suffix string) (int, bool) {
	if !doublestar.MatchUnvalidated(glob, name) {
		return 0, false
	}
	digits := name[len(prefix) : len(name)-len(suffix)]
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
