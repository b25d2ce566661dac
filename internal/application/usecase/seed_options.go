// internal/application/usecase/seed_options.go
package usecase

import (
	"errors"
	"strings"

	sessiondom "smartattender/internal/domain/session"
	teacherdom "smartattender/internal/domain/teacher"
)

const (
	DefaultClassName = "Demo Class"
	DefaultSubject   = "Mathematics"
)

var ErrTeacherRequired = errors.New("seed: --teacher is required")

// SeedOptions is built once per invocation from the CLI flags.
type SeedOptions struct {
	TeacherID   string
	TeacherName string
	ClassName   string
	Subject     string
	SkipSession bool
	// 空なら store 側で採番
	SessionID string
	// "lat,lng"
	Location string
}

// Normalize returns a trimmed copy with defaults applied.
func (o SeedOptions) Normalize() SeedOptions {
	o.TeacherID = strings.TrimSpace(o.TeacherID)
	o.TeacherName = strings.TrimSpace(o.TeacherName)
	o.ClassName = strings.TrimSpace(o.ClassName)
	o.Subject = strings.TrimSpace(o.Subject)
	o.SessionID = strings.TrimSpace(o.SessionID)
	o.Location = strings.TrimSpace(o.Location)

	if o.TeacherName == "" {
		o.TeacherName = teacherdom.DefaultDisplayName
	}
	if o.ClassName == "" {
		o.ClassName = DefaultClassName
	}
	if o.Subject == "" {
		o.Subject = DefaultSubject
	}
	if o.Location == "" {
		o.Location = sessiondom.DefaultLocation
	}
	return o
}

// Validate checks the teacher id and, unless the session is skipped, the
// given session id and the location format.
func (o SeedOptions) Validate() error {
	if strings.TrimSpace(o.TeacherID) == "" {
		return ErrTeacherRequired
	}
	if !o.SkipSession {
		if id := strings.TrimSpace(o.SessionID); id != "" {
			if err := sessiondom.ValidateID(id); err != nil {
				return err
			}
		}
		if _, err := sessiondom.ParseLocation(o.Location); err != nil {
			return err
		}
	}
	return nil
}
