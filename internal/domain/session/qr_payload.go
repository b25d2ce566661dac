// internal/domain/session/qr_payload.go
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidQRPayload = errors.New("session: invalid qr payload")

// QRPayload is what the student app reads after scanning the session QR.
// Field names match the session document.
type QRPayload struct {
	SessionID           string      `json:"sessionId"`
	TeacherID           string      `json:"teacherId"`
	ClassName           string      `json:"className"`
	Subject             string      `json:"subject"`
	ScheduledAt         string      `json:"scheduledAt"`
	DurationMinutes     int         `json:"durationMinutes"`
	ExpectedAttendance  int         `json:"expectedAttendance"`
	Status              Status      `json:"status"`
	Location            string      `json:"location"`
	LocationCoordinates Coordinates `json:"locationCoordinates"`
	SessionToken        string      `json:"sessionToken"`
}

// QRPayload encodes the session fields as a JSON string.
func (s Session) QRPayload() (string, error) {
	p := QRPayload{
		SessionID:           s.ID,
		TeacherID:           s.TeacherID,
		ClassName:           s.ClassName,
		Subject:             s.Subject,
		ScheduledAt:         s.ScheduledAt.UTC().Format(time.RFC3339),
		DurationMinutes:     s.DurationMinutes,
		ExpectedAttendance:  s.ExpectedAttendance,
		Status:              s.Status,
		Location:            s.Location,
		LocationCoordinates: s.Coordinates,
		SessionToken:        s.SessionToken,
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("session: encode qr payload: %w", err)
	}
	return string(b), nil
}

// DecodeQRPayload parses a scanned payload. sessionToken is mandatory since it
// is the public lookup key.
func DecodeQRPayload(s string) (QRPayload, error) {
	var p QRPayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return QRPayload{}, fmt.Errorf("%w: %v", ErrInvalidQRPayload, err)
	}
	if p.SessionToken == "" {
		return QRPayload{}, fmt.Errorf("%w: sessionToken is empty", ErrInvalidQRPayload)
	}
	return p, nil
}
