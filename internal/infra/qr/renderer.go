// internal/infra/qr/renderer.go
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 512

// Renderer encodes session QR payloads as PNG.
type Renderer struct {
	Size  int
	Level qrcode.RecoveryLevel
}

// NewRenderer renders 512px PNGs at Medium recovery.
func NewRenderer() *Renderer {
	return &Renderer{Size: defaultSize, Level: qrcode.Medium}
}

func (r *Renderer) RenderPNG(payload string) ([]byte, error) {
	if payload == "" {
		return nil, errors.New("qr: payload is empty")
	}
	size := defaultSize
	level := qrcode.Medium
	if r != nil {
		if r.Size > 0 {
			size = r.Size
		}
		level = r.Level
	}

	png, err := qrcode.Encode(payload, level, size)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	return png, nil
}
