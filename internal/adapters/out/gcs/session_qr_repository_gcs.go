// internal/adapters/out/gcs/session_qr_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"

	uc "smartattender/internal/application/usecase"
)

// SessionQRRepositoryGCS uploads session QR images.
//
// layout:
// - bucket: QR_BUCKET / --qr-bucket
// - objectPath: sessions/{sessionToken}.png
type SessionQRRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// 空なら https://storage.googleapis.com
	PublicBaseURL string
}

func NewSessionQRRepositoryGCS(client *storage.Client, bucket string) *SessionQRRepositoryGCS {
	return &SessionQRRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

var _ uc.QRPublisher = (*SessionQRRepositoryGCS)(nil)

// PublishQR writes the PNG and returns its public URL.
func (r *SessionQRRepositoryGCS) PublishQR(ctx context.Context, sessionToken string, png []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("session_qr_repository_gcs: storage client is nil")
	}
	bucket := strings.TrimSpace(r.Bucket)
	if bucket == "" {
		return "", errors.New("session_qr_repository_gcs: bucket is empty")
	}
	objectPath, err := ObjectPath(sessionToken)
	if err != nil {
		return "", err
	}
	if len(png) == 0 {
		return "", errors.New("session_qr_repository_gcs: png is empty")
	}

	w := r.Client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = "image/png"
	w.CacheControl = "public, max-age=300"
	if _, err := w.Write(png); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("session_qr_repository_gcs: write gs://%s/%s: %w", bucket, objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("session_qr_repository_gcs: close gs://%s/%s: %w", bucket, objectPath, err)
	}

	return PublicURL(r.PublicBaseURL, bucket, objectPath), nil
}

// ObjectPath returns "sessions/{token}.png".
func ObjectPath(sessionToken string) (string, error) {
	seg := sanitizePathSegment(sessionToken)
	if seg == "" {
		return "", errors.New("session_qr_repository_gcs: session token is empty")
	}
	return "sessions/" + seg + ".png", nil
}

// PublicURL builds https://storage.googleapis.com/{bucket}/{objectPath}.
func PublicURL(baseURL, bucket, objectPath string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	parts := strings.Split(objectPath, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return base + "/" + bucket + "/" + strings.Join(parts, "/")
}

// sanitizePathSegment removes separators and trims dots/spaces.
func sanitizePathSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.Trim(s, ". ")
	return s
}
