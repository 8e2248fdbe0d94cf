package dto

// CourseWithEnrollment is a catalog entry with its computed enrollment
// count. The "course name" key is part of the public contract.
type CourseWithEnrollment struct {
	ID          int64  `json:"id"`
	CourseName  string `json:"course name"`
	Instructor  string `json:"instructor"`
	Description string `json:"description"`
	Enrolled    int    `json:"enrolled"`
}

// CourseNameEntry is the lightweight (id, name) projection.
type CourseNameEntry struct {
	ID         int64  `json:"id"`
	CourseName string `json:"course name"`
}

// CourseListResponse wraps catalog listings.
type CourseListResponse struct {
	Courses any `json:"courses"`
}

// EnrollRequest is the form body shared by enroll and unenroll; the
// course is referenced by its unique name.
type EnrollRequest struct {
	Course string `form:"course" binding:"required"`
}

// CourseRef identifies a course in the participants response.
type CourseRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CourseParticipantsResponse lists the students enrolled in a course.
type CourseParticipantsResponse struct {
	Course           []CourseRef   `json:"course"`
	StudentsEnrolled []StudentInfo `json:"students_enrolled"`
}
