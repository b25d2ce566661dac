package cli

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	uc "smartattender/internal/application/usecase"
)

type recorder struct {
	calls int
	inv   Invocation
	err   error
}

func (r *recorder) run(_ context.Context, inv Invocation) error {
	r.calls++
	r.inv = inv
	return r.err
}

func execute(t *testing.T, r *recorder, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = Execute(context.Background(), args, &out, &errb, r.run)
	return code, out.String(), errb.String()
}

func TestExecuteMissingTeacher(t *testing.T) {
	r := &recorder{}
	code, out, errOut := execute(t, r, "--class", "Grade 9A")

	if code == 0 {
		t.Fatalf("exit code = 0, want non-zero")
	}
	if r.calls != 0 {
		t.Fatalf("runner called %d times, want 0", r.calls)
	}
	if !strings.Contains(errOut, `"teacher"`) {
		t.Fatalf("stderr = %q, want required flag error", errOut)
	}
	if !strings.Contains(out+errOut, "Usage:") {
		t.Fatalf("usage not printed: stdout=%q stderr=%q", out, errOut)
	}
}

func TestExecuteHelp(t *testing.T) {
	for _, arg := range []string{"--help", "-h"} {
		r := &recorder{}
		code, out, _ := execute(t, r, arg)
		if code != 0 {
			t.Fatalf("%s: exit code = %d, want 0", arg, code)
		}
		if r.calls != 0 {
			t.Fatalf("%s: runner called", arg)
		}
		if !strings.Contains(out, "--teacher") || !strings.Contains(out, "--skip-session") {
			t.Fatalf("%s: help output missing flags: %q", arg, out)
		}
	}
}

func TestExecuteMapsFlags(t *testing.T) {
	r := &recorder{}
	code, _, errOut := execute(t, r,
		"--teacher", "abc123",
		"--name", "Ms. Rao",
		"--class=Grade 9A",
		"--subject", "Physics",
		"--location", "12.9,77.6",
		"--session-id", "sess-1",
		"--service-account", "./sa.json",
		"--service-account-secret", "projects/p/secrets/sa",
		"--project", "demo-project",
		"--dry-run",
		"--verify-auth",
		"--qr-out", "out/qr.png",
		"--qr-bucket", "qr-bucket",
	)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%q", code, errOut)
	}
	if r.calls != 1 {
		t.Fatalf("runner called %d times, want 1", r.calls)
	}

	want := Invocation{
		Seed: uc.SeedOptions{
			TeacherID:   "abc123",
			TeacherName: "Ms. Rao",
			ClassName:   "Grade 9A",
			Subject:     "Physics",
			Location:    "12.9,77.6",
			SessionID:   "sess-1",
		},
		ServiceAccountPath:   "./sa.json",
		ServiceAccountSecret: "projects/p/secrets/sa",
		ProjectID:            "demo-project",
		DryRun:               true,
		VerifyAuth:           true,
		QROut:                "out/qr.png",
		QRBucket:             "qr-bucket",
	}
	if !reflect.DeepEqual(r.inv, want) {
		t.Fatalf("invocation = %+v\nwant %+v", r.inv, want)
	}
}

func TestExecuteSkipSession(t *testing.T) {
	r := &recorder{}
	// location is not validated when the session is skipped
	code, _, errOut := execute(t, r, "--teacher", "abc123", "--skip-session", "--location", "nowhere")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%q", code, errOut)
	}
	if !r.inv.Seed.SkipSession {
		t.Fatalf("SkipSession = false, want true")
	}
}

func TestExecuteUnknownFlagIsIgnored(t *testing.T) {
	r := &recorder{}
	code, _, errOut := execute(t, r, "--teacher", "abc123", "--colour", "blue", "--verbose", "--dry-run")

	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%q", code, errOut)
	}
	if r.calls != 1 {
		t.Fatalf("runner called %d times, want 1", r.calls)
	}
	if r.inv.Seed.TeacherID != "abc123" || !r.inv.DryRun {
		t.Fatalf("invocation = %+v", r.inv)
	}
	for _, want := range []string{"unknown flag --colour", "unknown flag --verbose"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("stderr = %q, want %q", errOut, want)
		}
	}
	if strings.Contains(errOut, "unexpected argument") {
		t.Fatalf("flag value reported as positional: %q", errOut)
	}
}

func TestExecuteStrayArgument(t *testing.T) {
	r := &recorder{}
	code, _, errOut := execute(t, r, "--teacher", "abc123", "extra")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(errOut, `unexpected argument "extra"`) {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestExecuteBlankTeacher(t *testing.T) {
	for _, teacher := range []string{"", "   "} {
		r := &recorder{}
		code, out, errOut := execute(t, r, "--teacher", teacher)
		if code == 0 {
			t.Fatalf("--teacher %q: exit code = 0, want non-zero", teacher)
		}
		if r.calls != 0 {
			t.Fatalf("--teacher %q: runner called", teacher)
		}
		if !strings.Contains(errOut, uc.ErrTeacherRequired.Error()) {
			t.Fatalf("--teacher %q: stderr = %q", teacher, errOut)
		}
		if !strings.Contains(out+errOut, "Usage:") {
			t.Fatalf("--teacher %q: usage not printed", teacher)
		}
	}
}

func TestExecuteInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"location", []string{"--teacher", "abc123", "--location", "north"}},
		{"session id", []string{"--teacher", "abc123", "--session-id", "a/b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			code, out, errOut := execute(t, r, tt.args...)
			if code == 0 {
				t.Fatalf("exit code = 0, want non-zero")
			}
			if r.calls != 0 {
				t.Fatalf("runner called with invalid %s", tt.name)
			}
			if !strings.Contains(errOut, "Error:") {
				t.Fatalf("stderr = %q", errOut)
			}
			if !strings.Contains(out+errOut, "Usage:") {
				t.Fatalf("usage not printed for an argument error")
			}
		})
	}
}

func TestExecuteRunnerError(t *testing.T) {
	r := &recorder{err: errors.New("boom")}
	code, out, errOut := execute(t, r, "--teacher", "abc123")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, "Error: boom") {
		t.Fatalf("stderr = %q", errOut)
	}
	if strings.Contains(out, "Usage:") {
		t.Fatalf("usage printed for a runtime error: %q", out)
	}
}

func TestWithHint(t *testing.T) {
	err := withHint(errors.Join(errors.New("firestore: set"), uc.ErrPermissionDenied))
	if !errors.Is(err, uc.ErrPermissionDenied) {
		t.Fatalf("hint lost the cause: %v", err)
	}
	if !strings.Contains(err.Error(), "Cloud Datastore User") {
		t.Fatalf("err = %q, want role hint", err)
	}
	if withHint(nil) != nil {
		t.Fatalf("withHint(nil) != nil")
	}
	plain := errors.New("plain")
	if withHint(plain) != plain {
		t.Fatalf("plain error was rewrapped")
	}
}

func TestUnknownFlags(t *testing.T) {
	fs := NewRootCommand(nil, nil).Flags()

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"--teacher", "abc"}, nil},
		{[]string{"--teacher", "--colour"}, nil},
		{[]string{"--colour=blue", "--teacher", "abc"}, []string{"--colour"}},
		{[]string{"--colour", "blue", "--dry-run"}, []string{"--colour"}},
		{[]string{"-x", "--dry-run"}, []string{"-x"}},
		{[]string{"-h"}, nil},
		{[]string{"--dry-run", "--", "--colour"}, nil},
	}
	for _, tt := range tests {
		got := unknownFlags(fs, tt.args)
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("unknownFlags(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
