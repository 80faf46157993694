package models

type CourseEnrollmentCount struct {
	CourseID    string `json:"course_id"`
	CourseName  string `json:"course_name"`
	Discipline  string `json:"discipline"`
	ActiveCount int    `json:"active_count"`
}

type BranchRevenue struct {
	BranchID   string  `json:"branch_id"`
	BranchName string  `json:"branch_name"`
	Month      string  `json:"month"`
	Total      float64 `json:"total"`
}

type BranchStudentCount struct {
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Active     int    `json:"active"`
	Total      int    `json:"total"`
}
