// internal/domain/session/public.go
package session

import (
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

// PublicCollectionName は token をドキュメントIDにした公開コレクション。
// 生徒側はここから sessionPath を辿る（teachers/* は公開しない）。
const PublicCollectionName = "publicSessions"

// PublicSession is the token-keyed pointer to a private session.
type PublicSession struct {
	SessionToken string
	SessionPath  string
	SessionID    string
	TeacherID    string
	ClassName    string
	Subject      string
	ScheduledAt  time.Time
	Status       Status
}

// NewPublicSession derives the public pointer from s.
func NewPublicSession(s Session) (PublicSession, error) {
	token := strings.TrimSpace(s.SessionToken)
	if token == "" || strings.Contains(token, "/") {
		return PublicSession{}, ErrInvalidToken
	}
	if token == s.ID {
		return PublicSession{}, ErrTokenCollision
	}
	if strings.TrimSpace(s.TeacherID) == "" {
		return PublicSession{}, ErrInvalidTeacherID
	}
	if strings.TrimSpace(s.ID) == "" {
		return PublicSession{}, ErrInvalidSessionID
	}

	return PublicSession{
		SessionToken: token,
		SessionPath:  s.Path(),
		SessionID:    s.ID,
		TeacherID:    s.TeacherID,
		ClassName:    s.ClassName,
		Subject:      s.Subject,
		ScheduledAt:  s.ScheduledAt,
		Status:       s.Status,
	}, nil
}

// PublicPath returns "publicSessions/{token}".
func PublicPath(token string) string {
	return PublicCollectionName + "/" + token
}

func (p PublicSession) Path() string {
	return PublicPath(p.SessionToken)
}

func (p PublicSession) Document() map[string]any {
	return map[string]any{
		"sessionToken": p.SessionToken,
		"sessionPath":  p.SessionPath,
		"sessionId":    p.SessionID,
		"teacherId":    p.TeacherID,
		"className":    p.ClassName,
		"subject":      p.Subject,
		"scheduledAt":  p.ScheduledAt,
		"status":       string(p.Status),
		"updatedAt":    firestore.ServerTimestamp,
	}
}

// NewToken returns a random opaque token that never equals sessionID.
func NewToken(sessionID string) string {
	for {
		t := strings.ReplaceAll(uuid.NewString(), "-", "")
		if t != sessionID {
			return t
		}
	}
}
