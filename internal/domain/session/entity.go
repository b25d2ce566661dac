// internal/domain/session/entity.go
package session

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	teacherdom "smartattender/internal/domain/teacher"
)

// Status mirrors the client-side session status enum.
// The seeder only ever produces StatusScheduled.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

const (
	// teachers/{teacherId}/sessions/{sessionId}
	CollectionName = "sessions"

	ScheduleLead       = 15 * time.Minute
	DurationMinutes    = 45
	ExpectedAttendance = 30
)

var (
	ErrInvalidTeacherID = errors.New("session: invalid teacher id")
	ErrInvalidSessionID = errors.New("session: invalid session id")
	ErrInvalidToken     = errors.New("session: invalid session token")
	ErrTokenCollision   = errors.New("session: session token must differ from session id")
)

// SessionInput is everything NewSession needs besides the clock.
type SessionInput struct {
	TeacherID    string
	SessionID    string
	SessionToken string
	ClassName    string
	Subject      string
	// "lat,lng"; empty means DefaultLocation
	Location string
}

// Session is the private attendance session owned by a teacher.
type Session struct {
	ID                 string
	TeacherID          string
	ClassName          string
	Subject            string
	ScheduledAt        time.Time
	DurationMinutes    int
	ExpectedAttendance int
	Status             Status
	Location           string
	Coordinates        Coordinates
	Attendees          []string
	SessionToken       string

	// 任意: QR 画像を公開した場合のみ
	QRImageURL string

	CreatedAt time.Time
}

// ValidateID rejects ids that are empty or span more than one path segment.
func ValidateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		return ErrInvalidSessionID
	}
	return nil
}

// NewSession builds a scheduled session starting ScheduleLead after now.
func NewSession(in SessionInput, now time.Time) (Session, error) {
	teacherID := strings.TrimSpace(in.TeacherID)
	if teacherID == "" || strings.Contains(teacherID, "/") {
		return Session{}, ErrInvalidTeacherID
	}
	id := strings.TrimSpace(in.SessionID)
	if err := ValidateID(id); err != nil {
		return Session{}, err
	}
	token := strings.TrimSpace(in.SessionToken)
	if token == "" || strings.Contains(token, "/") {
		return Session{}, ErrInvalidToken
	}
	if token == id {
		return Session{}, ErrTokenCollision
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = DefaultLocation
	}
	coords, err := ParseLocation(location)
	if err != nil {
		return Session{}, err
	}

	now = now.UTC()
	return Session{
		ID:                 id,
		TeacherID:          teacherID,
		ClassName:          strings.TrimSpace(in.ClassName),
		Subject:            strings.TrimSpace(in.Subject),
		ScheduledAt:        now.Add(ScheduleLead),
		DurationMinutes:    DurationMinutes,
		ExpectedAttendance: ExpectedAttendance,
		Status:             StatusScheduled,
		Location:           location,
		Coordinates:        coords,
		Attendees:          []string{},
		SessionToken:       token,
		CreatedAt:          now,
	}, nil
}

// CollectionPath returns "teachers/{teacherId}/sessions".
func CollectionPath(teacherID string) string {
	return teacherdom.Path(teacherID) + "/" + CollectionName
}

// Path returns "teachers/{teacherId}/sessions/{sessionId}".
func Path(teacherID, sessionID string) string {
	return CollectionPath(teacherID) + "/" + sessionID
}

func (s Session) Path() string {
	return Path(s.TeacherID, s.ID)
}

// Document returns the Firestore payload including the encoded qrPayload.
func (s Session) Document() (map[string]any, error) {
	qr, err := s.QRPayload()
	if err != nil {
		return nil, err
	}

	attendees := s.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	doc := map[string]any{
		"sessionId":           s.ID,
		"teacherId":           s.TeacherID,
		"className":           s.ClassName,
		"subject":             s.Subject,
		"scheduledAt":         s.ScheduledAt,
		"durationMinutes":     s.DurationMinutes,
		"expectedAttendance":  s.ExpectedAttendance,
		"status":              string(s.Status),
		"location":            s.Location,
		"locationCoordinates": s.Coordinates.document(),
		"attendees":           attendees,
		"sessionToken":        s.SessionToken,
		"qrPayload":           qr,
		"createdAt":           s.CreatedAt,
		"updatedAt":           firestore.ServerTimestamp,
	}
	if s.QRImageURL != "" {
		doc["qrImageUrl"] = s.QRImageURL
	}
	return doc, nil
}
