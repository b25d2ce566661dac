// internal/infra/credentials/locator.go
package credentials

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrNotFound    = errors.New("credentials: service account file not found")
	ErrNoCandidate = errors.New("credentials: no service account file could be located")
)

// EnvServiceAccountPath is the fallback variable consulted after --service-account.
const EnvServiceAccountPath = "FIREBASE_SERVICE_ACCOUNT_PATH"

// LocateOptions は service account の探索元です。
type LocateOptions struct {
	// --service-account
	ExplicitPath string
	// FIREBASE_SERVICE_ACCOUNT_PATH
	EnvPath string
	// scan fallback
	ScanDir     string
	ScanPattern string
}

// Locate returns an absolute path to a service account JSON file.
//
// Priority:
//  1. ExplicitPath (must exist)
//  2. EnvPath (must exist)
//  3. first *.json under ScanDir whose name contains ScanPattern
func Locate(opts LocateOptions) (string, error) {
	if p := strings.TrimSpace(opts.ExplicitPath); p != "" {
		return existingAbs(p, "--service-account")
	}
	if p := strings.TrimSpace(opts.EnvPath); p != "" {
		return existingAbs(p, EnvServiceAccountPath)
	}

	found, err := scan(opts.ScanDir, opts.ScanPattern)
	if err != nil {
		return "", err
	}
	log.Printf("[credentials] discovered service account: %s", found)
	return found, nil
}

func existingAbs(p, source string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("credentials: resolve %s path %q: %w", source, p, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s (from %s)", ErrNotFound, abs, source)
		}
		return "", fmt.Errorf("credentials: stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory (from %s)", ErrNotFound, abs, source)
	}
	return abs, nil
}

func scan(dir, pattern string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	pattern = strings.TrimSpace(pattern)

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("credentials: resolve scan dir %q: %w", dir, err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w (scan dir %s does not exist)", ErrNoCandidate, abs)
		}
		return "", fmt.Errorf("credentials: read scan dir %s: %w", abs, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		if pattern != "" && !strings.Contains(name, pattern) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w (set --service-account or %s, or place a *%s*.json in %s)",
			ErrNoCandidate, EnvServiceAccountPath, pattern, abs)
	}

	// ReadDir はソート済みだが念のため
	sort.Strings(names)
	return filepath.Join(abs, names[0]), nil
}
