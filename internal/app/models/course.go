package models

// Course represents a course from the catalog. The catalog is read-only
// from the API's perspective; rows are created out-of-band at startup.
type Course struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Instructor  string `json:"instructor" db:"instructor"`
	Description string `json:"description" db:"description"`
}
