package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeycumines/pocket-dos/internal/storage"
)

// SetKeyInFile sets a global key in the config file at path, keeping
// comments and layout. An existing global line is replaced in place; a new
// key goes before the first section header, or at the end. Keys inside
// sections are never touched.
func SetKeyInFile(path, key, value string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	newLine := key
	if value != "" {
		newLine = key + " " + value
	}

	insertAt := len(lines)
	replaced := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isSectionHeader(trimmed) {
			insertAt = i
			break
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if name, _, _ := strings.Cut(trimmed, " "); name == key {
			lines[i] = newLine
			replaced = true
			break
		}
	}

	if !replaced {
		switch {
		case insertAt < len(lines):
			lines = append(lines[:insertAt+1], lines[insertAt:]...)
			lines[insertAt] = newLine
		case len(lines) > 0 && lines[len(lines)-1] == "":
			lines = append(lines[:len(lines)-1], newLine, "")
		default:
			lines = append(lines, newLine)
		}
	}

	return writeLines(path, lines)
}

// UnsetKeyInFile removes a global key from the config file, reporting
// whether it was present.
func UnsetKeyInFile(path, key string) (bool, error) {
	lines, err := readLines(path)
	if err != nil {
		return false, err
	}
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isSectionHeader(trimmed) {
			break
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if name, _, _ := strings.Cut(trimmed, " "); name == key {
			lines = append(lines[:i], lines[i+1:]...)
			return true, writeLines(path, lines)
		}
	}
	return false, nil
}

func isSectionHeader(s string) bool {
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return strings.Split(string(data), "\n"), nil
}

func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return storage.AtomicWriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}
