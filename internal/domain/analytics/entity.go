// internal/domain/analytics/entity.go
package analytics

import (
	"errors"
	"math"
	"strings"
	"time"
)

// teacherAnalytics/{teacherId}
const CollectionName = "teacherAnalytics"

var ErrInvalidTeacherID = errors.New("analytics: invalid teacher id")

// ClassSummary is one row of the per-class attendance overview.
type ClassSummary struct {
	ClassName      string
	Subject        string
	TotalStudents  int
	AttendanceRate float64 // percent
}

// AtRiskStudent has attendance below the warning threshold.
type AtRiskStudent struct {
	StudentID      string
	Name           string
	ClassName      string
	AttendanceRate float64
}

// FailingStudent has an average score below the pass mark.
type FailingStudent struct {
	StudentID    string
	Name         string
	ClassName    string
	AverageScore float64
}

// Snapshot is the dashboard aggregate for one teacher.
type Snapshot struct {
	TeacherID             string
	GeneratedAt           time.Time
	AverageAttendanceRate float64
	Classes               []ClassSummary
	AtRiskStudents        []AtRiskStudent
	FailingStudents       []FailingStudent
}

// NewSnapshot builds the demo snapshot from the sample catalog. className
// replaces the first sample class (and the students attached to it).
func NewSnapshot(teacherID, className string, now time.Time) (Snapshot, error) {
	teacherID = strings.TrimSpace(teacherID)
	if teacherID == "" || strings.Contains(teacherID, "/") {
		return Snapshot{}, ErrInvalidTeacherID
	}

	classes := append([]ClassSummary(nil), sampleClasses...)
	atRisk := append([]AtRiskStudent(nil), sampleAtRiskStudents...)
	failing := append([]FailingStudent(nil), sampleFailingStudents...)

	if name := strings.TrimSpace(className); name != "" && len(classes) > 0 {
		old := classes[0].ClassName
		classes[0].ClassName = name
		for i := range atRisk {
			if atRisk[i].ClassName == old {
				atRisk[i].ClassName = name
			}
		}
		for i := range failing {
			if failing[i].ClassName == old {
				failing[i].ClassName = name
			}
		}
	}

	return Snapshot{
		TeacherID:             teacherID,
		GeneratedAt:           now.UTC(),
		AverageAttendanceRate: AverageAttendanceRate(classes),
		Classes:               classes,
		AtRiskStudents:        atRisk,
		FailingStudents:       failing,
	}, nil
}

// AverageAttendanceRate is the unweighted mean of the class rates, rounded
// to one decimal. Zero classes yield 0.
func AverageAttendanceRate(classes []ClassSummary) float64 {
	if len(classes) == 0 {
		return 0
	}
	var sum float64
	for _, c := range classes {
		sum += c.AttendanceRate
	}
	return math.Round(sum/float64(len(classes))*10) / 10
}

// Path returns "teacherAnalytics/{teacherId}".
func Path(teacherID string) string {
	return CollectionName + "/" + teacherID
}

func (s Snapshot) Path() string {
	return Path(s.TeacherID)
}

func (s Snapshot) Document() map[string]any {
	classes := make([]map[string]any, 0, len(s.Classes))
	for _, c := range s.Classes {
		classes = append(classes, map[string]any{
			"className":      c.ClassName,
			"subject":        c.Subject,
			"totalStudents":  c.TotalStudents,
			"attendanceRate": c.AttendanceRate,
		})
	}
	atRisk := make([]map[string]any, 0, len(s.AtRiskStudents))
	for _, st := range s.AtRiskStudents {
		atRisk = append(atRisk, map[string]any{
			"studentId":      st.StudentID,
			"name":           st.Name,
			"className":      st.ClassName,
			"attendanceRate": st.AttendanceRate,
		})
	}
	failing := make([]map[string]any, 0, len(s.FailingStudents))
	for _, st := range s.FailingStudents {
		failing = append(failing, map[string]any{
			"studentId":    st.StudentID,
			"name":         st.Name,
			"className":    st.ClassName,
			"averageScore": st.AverageScore,
		})
	}

	return map[string]any{
		"teacherId":             s.TeacherID,
		"generatedAt":           s.GeneratedAt,
		"averageAttendanceRate": s.AverageAttendanceRate,
		"classes":               classes,
		"atRiskStudents":        atRisk,
		"failingStudents":       failing,
	}
}
