// internal/adapters/out/firebaseauth/teacher_verifier.go
package firebaseauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"

	uc "smartattender/internal/application/usecase"
)

// userGetter is the subset of *auth.Client used here.
type userGetter interface {
	GetUser(ctx context.Context, uid string) (*firebaseauth.UserRecord, error)
}

// TeacherVerifier checks that the teacher id is a Firebase Auth uid (--verify-auth).
type TeacherVerifier struct {
	users userGetter
}

func NewTeacherVerifier(client *firebaseauth.Client) *TeacherVerifier {
	if client == nil {
		return &TeacherVerifier{}
	}
	return &TeacherVerifier{users: client}
}

var _ uc.TeacherVerifier = (*TeacherVerifier)(nil)

func (v *TeacherVerifier) VerifyTeacher(ctx context.Context, teacherID string) error {
	if v == nil || v.users == nil {
		return errors.New("firebaseauth: auth client is nil")
	}
	uid := strings.TrimSpace(teacherID)
	if uid == "" {
		return uc.ErrTeacherRequired
	}

	u, err := v.users.GetUser(ctx, uid)
	if err != nil {
		if firebaseauth.IsUserNotFound(err) {
			return fmt.Errorf("%w: uid=%s", uc.ErrTeacherNotFound, uid)
		}
		return fmt.Errorf("firebaseauth: GetUser(%s): %w", uid, err)
	}
	if u != nil && u.Disabled {
		return fmt.Errorf("firebaseauth: uid=%s is disabled", uid)
	}
	return nil
}
