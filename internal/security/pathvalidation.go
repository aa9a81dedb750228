// Package security guards the paths the CLI and server write exports to.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/swing.report/internal/units"
)

const maxFilenameLen = 96

// canonical resolves symlinks in the longest existing prefix of path.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			rel, _ := filepath.Rel(dir, abs)
			return filepath.Join(resolved, rel), nil
		}
		if dir == filepath.Dir(dir) {
			return abs, nil
		}
	}
}

// ValidatePathWithinDirectory rejects paths that resolve outside safeDir,
// including through symlinks in existing parents.
func ValidatePathWithinDirectory(path, safeDir string) error {
	p, err := canonical(path)
	if err != nil {
		return err
	}
	base, err := filepath.Abs(safeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory path: %w", err)
	}
	base, err = filepath.EvalSymlinks(base)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory symlinks: %w", err)
	}

	rel, err := filepath.Rel(base, p)
	if err != nil {
		return fmt.Errorf("path is outside safe directory: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("path traversal detected: %s attempts to escape %s", path, safeDir)
	}
	return nil
}

// ValidateExportPath accepts paths under the temp directory or the working
// directory.
func ValidateExportPath(path string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	allowed := []string{os.TempDir(), cwd}
	for _, dir := range allowed {
		if ValidatePathWithinDirectory(path, dir) == nil {
			return nil
		}
	}
	return fmt.Errorf("export path %s must be within one of %v", path, allowed)
}

// SanitizeFilename turns a session label or chart key into a lowercase
// ASCII file name: diacritics are folded and other runs of punctuation
// become a single dash. An empty result becomes "session".
func SanitizeFilename(s string) string {
	out := strings.ReplaceAll(units.NormalizeToken(s), " ", "-")
	if len(out) > maxFilenameLen {
		out = strings.TrimRight(out[:maxFilenameLen], "-")
	}
	if out == "" {
		return "session"
	}
	return out
}
