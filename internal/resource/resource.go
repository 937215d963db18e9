// Package resource resolves the application resource directory and the
// document/, config/ and logs/ subtrees the rest of the backend reads
// and writes.
package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Root is the base resource directory supplied by the application shell.
type Root string

// DefaultRoot resolves the resource root: $FIELDGUIDE_RESOURCE_DIR when
// set, otherwise ~/.local/share/fieldguide.
func DefaultRoot() Root {
	if dir := os.Getenv("FIELDGUIDE_RESOURCE_DIR"); dir != "" {
		return Root(dir)
	}
	home, _ := os.UserHomeDir()
	return Root(filepath.Join(home, ".local", "share", "fieldguide"))
}

// Document returns the data-file directory under the root.
func (r Root) Document() string { return filepath.Join(string(r), "document") }

// Config returns the config directory under the root.
func (r Root) Config() string { return filepath.Join(string(r), "config") }

// Logs returns the log directory under the root.
func (r Root) Logs() string { return filepath.Join(string(r), "logs") }

// DocumentFile returns the full path of a data file under document/.
func (r Root) DocumentFile(name string) string {
	return filepath.Join(r.Document(), name)
}

// ConfigFile returns the full path of a file under config/.
func (r Root) ConfigFile(name string) string {
	return filepath.Join(r.Config(), name)
}

// ReadConfig returns the raw contents of <root>/config/<name>.
func (r Root) ReadConfig(name string) (string, error) {
	data, err := os.ReadFile(r.ConfigFile(name))
	if err != nil {
		return "", fmt.Errorf("read config file: %w", err)
	}
	return string(data), nil
}

// ListFiles lists the immediate children of dir, files and directories
// alike. Names that are not valid UTF-8 are skipped; the rest are sorted
// case-insensitively (fold, then byte order), ties keeping directory
// order. The os error passes through unchanged when dir cannot be read.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !utf8.ValidString(name) {
			continue
		}
		names = append(names, name)
	}

	// Casers are stateful, so no shared package-level instance.
	fold := cases.Fold()
	sort.SliceStable(names, func(i, j int) bool {
		return fold.String(names[i]) < fold.String(names[j])
	})
	return names, nil
}
