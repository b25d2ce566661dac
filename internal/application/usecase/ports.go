// internal/application/usecase/ports.go
package usecase

import (
	"context"
	"errors"
)

// ========================================
// Ports (adapters/out で実装)
// ========================================

// DocumentStore is the write side of the document database.
type DocumentStore interface {
	// NewID returns a fresh document id inside collectionPath.
	NewID(collectionPath string) string
	// Upsert creates docPath or merges data into it (existing fields kept).
	Upsert(ctx context.Context, docPath string, data map[string]any) error
}

// TeacherVerifier confirms the teacher id is a real auth user.
type TeacherVerifier interface {
	VerifyTeacher(ctx context.Context, teacherID string) error
}

// QRPublisher stores the rendered session QR and returns where it lives.
// An empty location means nothing is linked from the session document.
type QRPublisher interface {
	PublishQR(ctx context.Context, sessionToken string, png []byte) (string, error)
}

// QRRenderer turns the qrPayload string into a PNG.
type QRRenderer interface {
	RenderPNG(payload string) ([]byte, error)
}

// Store errors surfaced by adapters so the CLI can print a hint.
var (
	ErrPermissionDenied = errors.New("seed: permission denied by document store")
	ErrUnauthenticated  = errors.New("seed: document store rejected credentials")
	ErrTeacherNotFound  = errors.New("seed: teacher is not a registered auth user")
)
