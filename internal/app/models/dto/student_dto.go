package dto

// StudentInfo is the public projection of a student record.
type StudentInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StudentWithCourses pairs a student with the names of the courses
// they are enrolled in.
type StudentWithCourses struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	CoursesEnrolled []string `json:"courses_enrolled"`
}

// StudentListResponse wraps the paginated student listing.
type StudentListResponse struct {
	Students []StudentWithCourses `json:"students"`
}
