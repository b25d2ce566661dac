package analytics

// Static sample data for the demo dashboard.
// Only the first class name is replaced by the seeded class (see NewSnapshot).
var sampleClasses = []ClassSummary{
	{ClassName: "Grade 10A", Subject: "Mathematics", TotalStudents: 32, AttendanceRate: 91.5},
	{ClassName: "Grade 10B", Subject: "Physics", TotalStudents: 28, AttendanceRate: 84.2},
	{ClassName: "Grade 11A", Subject: "Chemistry", TotalStudents: 30, AttendanceRate: 78.9},
}

var sampleAtRiskStudents = []AtRiskStudent{
	{StudentID: "student-001", Name: "Aarav Sharma", ClassName: "Grade 10A", AttendanceRate: 62.5},
	{StudentID: "student-014", Name: "Meera Iyer", ClassName: "Grade 10B", AttendanceRate: 58.3},
	{StudentID: "student-027", Name: "Rohan Das", ClassName: "Grade 11A", AttendanceRate: 55.0},
}

var sampleFailingStudents = []FailingStudent{
	{StudentID: "student-008", Name: "Kavya Nair", ClassName: "Grade 10A", AverageScore: 34.0},
	{StudentID: "student-019", Name: "Arjun Patel", ClassName: "Grade 10B", AverageScore: 29.5},
	{StudentID: "student-031", Name: "Isha Reddy", ClassName: "Grade 11A", AverageScore: 38.0},
}
