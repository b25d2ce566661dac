package analytics

import (
	"errors"
	"testing"
	"time"
)

func TestNewSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s, err := NewSnapshot("abc123", "Grade 9A", now)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}

	if len(s.Classes) != 3 || len(s.AtRiskStudents) != 3 || len(s.FailingStudents) != 3 {
		t.Fatalf("sizes = %d/%d/%d, want 3/3/3", len(s.Classes), len(s.AtRiskStudents), len(s.FailingStudents))
	}
	if s.Classes[0].ClassName != "Grade 9A" {
		t.Fatalf("Classes[0].ClassName = %q, want %q", s.Classes[0].ClassName, "Grade 9A")
	}
	if s.AtRiskStudents[0].ClassName != "Grade 9A" || s.FailingStudents[0].ClassName != "Grade 9A" {
		t.Fatalf("students of the seeded class were not renamed")
	}
	if s.Classes[1].ClassName != "Grade 10B" {
		t.Fatalf("Classes[1].ClassName = %q", s.Classes[1].ClassName)
	}
	if s.AverageAttendanceRate != 84.9 {
		t.Fatalf("AverageAttendanceRate = %v, want 84.9", s.AverageAttendanceRate)
	}
	if s.Path() != "teacherAnalytics/abc123" {
		t.Fatalf("Path = %q", s.Path())
	}

	// catalog must stay untouched between calls
	if sampleClasses[0].ClassName != "Grade 10A" {
		t.Fatalf("sample catalog was mutated: %q", sampleClasses[0].ClassName)
	}
}

func TestNewSnapshotKeepsSampleNameWhenClassEmpty(t *testing.T) {
	s, err := NewSnapshot("abc123", "  ", time.Now())
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	if s.Classes[0].ClassName != "Grade 10A" {
		t.Fatalf("Classes[0].ClassName = %q", s.Classes[0].ClassName)
	}
}

func TestNewSnapshotInvalidTeacher(t *testing.T) {
	if _, err := NewSnapshot("", "x", time.Now()); !errors.Is(err, ErrInvalidTeacherID) {
		t.Fatalf("err = %v, want ErrInvalidTeacherID", err)
	}
}

func TestAverageAttendanceRate(t *testing.T) {
	if got := AverageAttendanceRate(nil); got != 0 {
		t.Fatalf("AverageAttendanceRate(nil) = %v, want 0", got)
	}
	got := AverageAttendanceRate([]ClassSummary{{AttendanceRate: 90}, {AttendanceRate: 85}})
	if got != 87.5 {
		t.Fatalf("AverageAttendanceRate = %v, want 87.5", got)
	}
}

func TestDocument(t *testing.T) {
	s, err := NewSnapshot("abc123", "", time.Now())
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	doc := s.Document()
	if doc["teacherId"] != "abc123" {
		t.Fatalf("teacherId = %v", doc["teacherId"])
	}
	classes, ok := doc["classes"].([]map[string]any)
	if !ok || len(classes) != 3 {
		t.Fatalf("classes = %#v", doc["classes"])
	}
	if classes[2]["subject"] != "Chemistry" {
		t.Fatalf("classes[2].subject = %v", classes[2]["subject"])
	}
}
