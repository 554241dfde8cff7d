// Package paths resolves file references found in profile documents.
package paths

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SupportedImageExtensions are the image types the apply side can decode.
// The resolver does not enforce them; they feed error hints and the
// directory scanner.
var SupportedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// IsSupportedImage reports whether path has one of SupportedImageExtensions,
// ignoring case.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Resolved is an absolute path that pointed at a regular file when it was
// resolved.
type Resolved struct {
	Path    string `json:"path" yaml:"path"`
	Raw     string `json:"raw" yaml:"raw"`
	BaseDir string `json:"base_dir" yaml:"base_dir"`
}

func (r Resolved) String() string { return r.Path }

// NotFoundError reports a reference that does not name an existing regular
// file.
type NotFoundError struct {
	Raw      string
	Resolved string
	BaseDir  string
	Reason   string
	Err      error
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("file not found: '%s'", e.Raw)
	if e.Resolved != "" && e.Resolved != e.Raw {
		msg += fmt.Sprintf(" (resolved to '%s')", e.Resolved)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Hint suggests how to fix the reference.
func (e *NotFoundError) Hint() string {
	hint := "check that the file exists; relative paths are resolved from the profile's directory"
	if e.BaseDir != "" {
		hint += fmt.Sprintf(" (%s)", e.BaseDir)
	}
	return hint + "; supported image types: " + strings.Join(SupportedImageExtensions, ", ")
}

// Resolver turns raw path text into checked absolute paths.
//
// HomeDir and Stat default to os.UserHomeDir and os.Stat. Tests replace
// them to avoid depending on the real home directory.
type Resolver struct {
	BaseDir string
	HomeDir func() (string, error)
	Stat    func(string) (fs.FileInfo, error)
}

// NewResolver returns a Resolver for references relative to baseDir.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{BaseDir: baseDir}
}

// Expand applies home expansion and base-directory joining to raw and
// returns an absolute, cleaned path. It does not touch the file itself.
//
// Only "~" and "~/..." are expanded; "~user" is an ordinary relative name.
func (r *Resolver) Expand(raw string) (string, error) {
	var candidate string
	switch {
	case raw == "~" || strings.HasPrefix(raw, "~/") || strings.HasPrefix(raw, "~"+string(filepath.Separator)):
		home, err := r.homeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		candidate = filepath.Join(home, raw[1:])
	case filepath.IsAbs(raw):
		candidate = raw
	default:
		candidate = filepath.Join(r.BaseDir, raw)
	}

	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", fmt.Errorf("making '%s' absolute: %w", candidate, err)
	}
	return filepath.Clean(abs), nil
}

// Resolve expands raw and checks that the result is an existing regular
// file.
func (r *Resolver) Resolve(raw string) (Resolved, error) {
	if raw == "" {
		return Resolved{}, &NotFoundError{Raw: raw, BaseDir: r.BaseDir, Reason: "path is empty"}
	}

	path, err := r.Expand(raw)
	if err != nil {
		return Resolved{}, &NotFoundError{Raw: raw, BaseDir: r.BaseDir, Reason: err.Error(), Err: err}
	}

	info, err := r.stat(path)
	if err != nil {
		return Resolved{}, &NotFoundError{Raw: raw, Resolved: path, BaseDir: r.BaseDir, Reason: "does not exist", Err: err}
	}
	if !info.Mode().IsRegular() {
		reason := "not a regular file"
		if info.IsDir() {
			reason = "is a directory"
		}
		return Resolved{}, &NotFoundError{Raw: raw, Resolved: path, BaseDir: r.BaseDir, Reason: reason}
	}

	return Resolved{Path: path, Raw: raw, BaseDir: r.BaseDir}, nil
}

// Exists reports whether path names an existing regular file.
func (r *Resolver) Exists(path string) bool {
	info, err := r.stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (r *Resolver) homeDir() (string, error) {
	if r.HomeDir != nil {
		return r.HomeDir()
	}
	return os.UserHomeDir()
}

func (r *Resolver) stat(path string) (fs.FileInfo, error) {
	if r.Stat != nil {
		return r.Stat(path)
	}
	return os.Stat(path)
}
