package session

import (
	"errors"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in       string
		lat, lng float64
	}{
		{in: "12.9,77.6", lat: 12.9, lng: 77.6},
		{in: " -33.86 , 151.2 ", lat: -33.86, lng: 151.2},
		{in: "0,0", lat: 0, lng: 0},
		{in: "", lat: 0, lng: 0},
		{in: "1e1,-2", lat: 10, lng: -2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseLocation(tt.in)
			if err != nil {
				t.Fatalf("ParseLocation(%q): %v", tt.in, err)
			}
			if c.Latitude != tt.lat || c.Longitude != tt.lng {
				t.Fatalf("ParseLocation(%q) = %+v, want {%v %v}", tt.in, c, tt.lat, tt.lng)
			}
		})
	}
}

func TestParseLocationRejectsNonNumeric(t *testing.T) {
	for _, in := range []string{"abc,77.6", "12.9,east", "12.9", "12.9,", ",77.6", "NaN,1", "1,Inf", "1,2,3"} {
		if _, err := ParseLocation(in); !errors.Is(err, ErrInvalidLocation) {
			t.Fatalf("ParseLocation(%q) err = %v, want ErrInvalidLocation", in, err)
		}
	}
}

func newTestSession(t *testing.T) Session {
	t.Helper()
	s, err := NewSession(SessionInput{
		TeacherID:    "abc123",
		SessionID:    "sess-1",
		SessionToken: "tok-1",
		ClassName:    "Grade 9A",
		Subject:      "Physics",
		Location:     "12.9,77.6",
	}, fixedNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t)

	if want := fixedNow.Add(15 * time.Minute); !s.ScheduledAt.Equal(want) {
		t.Fatalf("ScheduledAt = %v, want %v", s.ScheduledAt, want)
	}
	if s.DurationMinutes != 45 {
		t.Fatalf("DurationMinutes = %d, want 45", s.DurationMinutes)
	}
	if s.ExpectedAttendance != 30 {
		t.Fatalf("ExpectedAttendance = %d, want 30", s.ExpectedAttendance)
	}
	if s.Status != StatusScheduled {
		t.Fatalf("Status = %q, want %q", s.Status, StatusScheduled)
	}
	if s.Coordinates != (Coordinates{Latitude: 12.9, Longitude: 77.6}) {
		t.Fatalf("Coordinates = %+v", s.Coordinates)
	}
	if s.Path() != "teachers/abc123/sessions/sess-1" {
		t.Fatalf("Path = %q", s.Path())
	}
}

func TestNewSessionDefaultsLocation(t *testing.T) {
	s, err := NewSession(SessionInput{TeacherID: "t", SessionID: "s", SessionToken: "k"}, fixedNow)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.Location != DefaultLocation {
		t.Fatalf("Location = %q, want %q", s.Location, DefaultLocation)
	}
}

func TestNewSessionErrors(t *testing.T) {
	tests := []struct {
		name string
		in   SessionInput
		want error
	}{
		{"no teacher", SessionInput{SessionID: "s", SessionToken: "k"}, ErrInvalidTeacherID},
		{"no session", SessionInput{TeacherID: "t", SessionToken: "k"}, ErrInvalidSessionID},
		{"no token", SessionInput{TeacherID: "t", SessionID: "s"}, ErrInvalidToken},
		{"token equals id", SessionInput{TeacherID: "t", SessionID: "same", SessionToken: "same"}, ErrTokenCollision},
		{"bad location", SessionInput{TeacherID: "t", SessionID: "s", SessionToken: "k", Location: "x,y"}, ErrInvalidLocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSession(tt.in, fixedNow); !errors.Is(err, tt.want) {
				t.Fatalf("NewSession err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	for id, want := range map[string]error{
		"sess-1": nil,
		" s1 ":   nil,
		"":       ErrInvalidSessionID,
		"   ":    ErrInvalidSessionID,
		"a/b":    ErrInvalidSessionID,
	} {
		if err := ValidateID(id); !errors.Is(err, want) {
			t.Fatalf("ValidateID(%q) = %v, want %v", id, err, want)
		}
	}
}

func TestSessionDocument(t *testing.T) {
	s := newTestSession(t)
	doc, err := s.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	coords, ok := doc["locationCoordinates"].(map[string]any)
	if !ok {
		t.Fatalf("locationCoordinates = %T", doc["locationCoordinates"])
	}
	if coords["latitude"] != 12.9 || coords["longitude"] != 77.6 {
		t.Fatalf("locationCoordinates = %v", coords)
	}
	if doc["className"] != "Grade 9A" {
		t.Fatalf("className = %v", doc["className"])
	}
	if a, ok := doc["attendees"].([]string); !ok || len(a) != 0 {
		t.Fatalf("attendees = %#v, want empty []string", doc["attendees"])
	}
	if _, ok := doc["qrImageUrl"]; ok {
		t.Fatalf("qrImageUrl should be absent")
	}

	qr, ok := doc["qrPayload"].(string)
	if !ok {
		t.Fatalf("qrPayload = %T", doc["qrPayload"])
	}
	p, err := DecodeQRPayload(qr)
	if err != nil {
		t.Fatalf("DecodeQRPayload: %v", err)
	}
	if p.SessionID != "sess-1" || p.SessionToken != "tok-1" || p.TeacherID != "abc123" {
		t.Fatalf("payload ids = %+v", p)
	}
	if p.ScheduledAt != "2026-03-02T09:15:00Z" {
		t.Fatalf("payload scheduledAt = %q", p.ScheduledAt)
	}
	if p.LocationCoordinates != s.Coordinates {
		t.Fatalf("payload coordinates = %+v", p.LocationCoordinates)
	}
}

func TestNewPublicSession(t *testing.T) {
	s := newTestSession(t)
	p, err := NewPublicSession(s)
	if err != nil {
		t.Fatalf("NewPublicSession: %v", err)
	}
	if p.Path() != "publicSessions/tok-1" {
		t.Fatalf("Path = %q", p.Path())
	}
	if p.SessionPath != "teachers/abc123/sessions/sess-1" {
		t.Fatalf("SessionPath = %q", p.SessionPath)
	}
	doc := p.Document()
	if doc["sessionToken"] == doc["sessionId"] {
		t.Fatalf("sessionToken equals sessionId")
	}
	if doc["status"] != "scheduled" {
		t.Fatalf("status = %v", doc["status"])
	}

	s.SessionToken = s.ID
	if _, err := NewPublicSession(s); !errors.Is(err, ErrTokenCollision) {
		t.Fatalf("NewPublicSession err = %v, want ErrTokenCollision", err)
	}
}

func TestNewTokenDiffersFromSessionID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := NewToken("sess-1")
		if tok == "sess-1" || tok == "" {
			t.Fatalf("NewToken = %q", tok)
		}
		if seen[tok] {
			t.Fatalf("NewToken repeated %q", tok)
		}
		seen[tok] = true
	}
}

func TestDecodeQRPayloadRequiresToken(t *testing.T) {
	if _, err := DecodeQRPayload(`{"sessionId":"x"}`); !errors.Is(err, ErrInvalidQRPayload) {
		t.Fatalf("err = %v, want ErrInvalidQRPayload", err)
	}
	if _, err := DecodeQRPayload(`not json`); !errors.Is(err, ErrInvalidQRPayload) {
		t.Fatalf("err = %v, want ErrInvalidQRPayload", err)
	}
}
