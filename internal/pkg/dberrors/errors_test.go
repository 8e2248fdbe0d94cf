package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"}

	assert.True(t, IsUniqueViolation(uniqueErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", uniqueErr)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"}

	assert.True(t, IsDuplicateConstraintError(uniqueErr, "students_email_key"))
	assert.False(t, IsDuplicateConstraintError(uniqueErr, "student_course_pkey"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "students_email_key"))
}
