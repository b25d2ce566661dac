// internal/infra/qr/file_publisher.go
package qr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePublisher writes the PNG to a local path (--qr-out).
type FilePublisher struct {
	Path string
}

func NewFilePublisher(path string) *FilePublisher {
	return &FilePublisher{Path: strings.TrimSpace(path)}
}

// PublishQR returns the absolute path written.
func (p *FilePublisher) PublishQR(ctx context.Context, _ string, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p == nil || p.Path == "" {
		return "", errors.New("qr: output path is empty")
	}
	abs, err := filepath.Abs(p.Path)
	if err != nil {
		return "", fmt.Errorf("qr: resolve %s: %w", p.Path, err)
	}
	if dir := filepath.Dir(abs); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("qr: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(abs, png, 0o644); err != nil {
		return "", fmt.Errorf("qr: write %s: %w", abs, err)
	}
	return abs, nil
}
