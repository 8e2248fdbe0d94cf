package models

// Student defines the student model based on the 'students' table.
// Records are immutable after registration except for deletion, which
// cascades over the student's enrollments.
type Student struct {
	ID             int64  `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	Email          string `json:"email" db:"email"`
	HashedPassword string `json:"-" db:"hashed_password"`
}
