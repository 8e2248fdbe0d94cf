package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursegrid/coursegrid/internal/app/models"
	"github.com/coursegrid/coursegrid/internal/app/repositories"
	"github.com/coursegrid/coursegrid/internal/pkg/apperrors"
	"github.com/coursegrid/coursegrid/internal/pkg/auth"
)

var testIdentity = auth.Identity{ID: 1, Name: "Jordan Smith", Email: "jordan@example.com"}

func newTestEnrollmentService(mock pgxmock.PgxPoolIface) EnrollmentService {
	return NewEnrollmentService(
		repositories.NewEnrollmentRepository(mock),
		repositories.NewCourseRepository(mock),
		Limits{StudentCourseLimit: 2, CourseCapacity: 10},
		zerolog.Nop(),
	)
}

func expectCourseLookup(mock pgxmock.PgxPoolIface, name string, id int64) {
	mock.ExpectQuery(`SELECT id, name, instructor, description FROM courses WHERE name =`).
		WithArgs(name).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "instructor", "description"}).
			AddRow(id, name, "Dr. Anita Rao", "Trees and graphs."))
}

func TestEnrollmentService_Enroll(t *testing.T) {
	t.Run("resolves the course by name and enrolls", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		expectCourseLookup(mock, "Data Structures", 5)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM students WHERE id = .+ FOR UPDATE`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(`SELECT id FROM courses WHERE id = .+ FOR UPDATE`).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
		mock.ExpectQuery(`SELECT 1 FROM student_course WHERE student_id = .+ AND course_id =`).
			WithArgs(int64(1), int64(5)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM student_course WHERE student_id =`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM student_course WHERE course_id =`).
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`INSERT INTO student_course`).
			WithArgs(int64(1), int64(5)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		svc := newTestEnrollmentService(mock)
		outcome, err := svc.Enroll(context.Background(), testIdentity, "Data Structures")
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeEnrolled, outcome)

		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("unknown course name", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, name, instructor, description FROM courses WHERE name =`).
			WithArgs("Quantum Basket Weaving").
			WillReturnError(pgx.ErrNoRows)

		svc := newTestEnrollmentService(mock)
		_, err = svc.Enroll(context.Background(), testIdentity, "Quantum Basket Weaving")
		require.ErrorIs(t, err, apperrors.ErrCourseNotFound)

		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestEnrollmentService_Unenroll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	expectCourseLookup(mock, "Data Structures", 5)
	mock.ExpectExec(`DELETE FROM student_course WHERE student_id = .+ AND course_id =`).
		WithArgs(int64(1), int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	svc := newTestEnrollmentService(mock)
	outcome, err := svc.Unenroll(context.Background(), testIdentity, "Data Structures")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnenrolled, outcome)

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestEnrollmentService_DeleteStudent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM student_course WHERE student_id =`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM students WHERE id =`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	svc := newTestEnrollmentService(mock)
	require.NoError(t, svc.DeleteStudent(context.Background(), testIdentity))

	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}
