// internal/domain/teacher/entity.go
package teacher

import (
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
)

const (
	CollectionName = "teachers"

	DefaultDisplayName = "Demo Teacher"
	RoleTeacher        = "teacher"
)

var ErrInvalidID = errors.New("teacher: invalid id")

// Teacher is the profile stored at teachers/{id}.
type Teacher struct {
	ID               string `json:"-"`
	DisplayName      string `json:"displayName"`
	Role             string `json:"role"`
	DefaultClassName string `json:"defaultClassName,omitempty"`
	DefaultSubject   string `json:"defaultSubject,omitempty"`
}

// New constructs a Teacher. An empty name falls back to DefaultDisplayName.
func New(id, displayName, className, subject string) (Teacher, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		return Teacher{}, ErrInvalidID
	}
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = DefaultDisplayName
	}
	return Teacher{
		ID:               id,
		DisplayName:      name,
		Role:             RoleTeacher,
		DefaultClassName: strings.TrimSpace(className),
		DefaultSubject:   strings.TrimSpace(subject),
	}, nil
}

// Path returns "teachers/{id}".
func Path(id string) string {
	return CollectionName + "/" + id
}

func (t Teacher) Path() string {
	return Path(t.ID)
}

// Document returns the merge payload. Fields not listed here are left as-is.
func (t Teacher) Document() map[string]any {
	doc := map[string]any{
		"displayName": t.DisplayName,
		"role":        t.Role,
		"updatedAt":   firestore.ServerTimestamp,
	}
	if t.DefaultClassName != "" {
		doc["defaultClassName"] = t.DefaultClassName
	}
	if t.DefaultSubject != "" {
		doc["defaultSubject"] = t.DefaultSubject
	}
	return doc
}
