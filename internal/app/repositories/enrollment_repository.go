package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/coursegrid/coursegrid/internal/app/models"
	"github.com/coursegrid/coursegrid/internal/pkg/apperrors"
)

// EnrollmentRepository owns the student_course join set and its
// capacity invariants. Capacity checks and the insert they guard run
// inside one transaction under row locks, so concurrent enrollments
// for the same student or course serialize and counts never exceed
// their limits. The composite primary key on (student_id, course_id)
// backstops the duplicate check.
type EnrollmentRepository struct {
	db PgxPool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db PgxPool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll attempts to add the (student, course) pair. Rule rejections
// (already enrolled, either capacity reached) come back as outcomes,
// not errors, and leave the ledger untouched.
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentID, courseID int64, studentLimit, courseCapacity int) (models.EnrollOutcome, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the student row first, then the course row. Every writer
	// takes locks in this order, which rules out lock cycles.
	if err := lockRow(ctx, tx, "students", studentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrStudentNotFound
		}
		return 0, err
	}
	if err := lockRow(ctx, tx, "courses", courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, err
	}

	// Re-enrolling is an idempotent no-op; it must not consume
	// capacity or be blocked by a full course.
	enrolled, err := r.pairExists(ctx, tx, studentID, courseID)
	if err != nil {
		return 0, err
	}
	if enrolled {
		return models.OutcomeAlreadyEnrolled, nil
	}

	studentCount, err := countWhere(ctx, tx, squirrel.Eq{"student_id": studentID})
	if err != nil {
		return 0, err
	}
	if studentCount == studentLimit {
		return models.OutcomeStudentLimitReached, nil
	}

	courseCount, err := countWhere(ctx, tx, squirrel.Eq{"course_id": courseID})
	if err != nil {
		return 0, err
	}
	if courseCount == courseCapacity {
		return models.OutcomeCourseLimitReached, nil
	}

	insert := squirrel.Insert("student_course").
		Columns("student_id", "course_id").
		Values(studentID, courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}

	return models.OutcomeEnrolled, nil
}

// Unenroll deletes the (student, course) pair. A pair that was never
// enrolled reports OutcomeNotEnrolled and mutates nothing.
func (r *EnrollmentRepository) Unenroll(ctx context.Context, studentID, courseID int64) (models.EnrollOutcome, error) {
	query := squirrel.Delete("student_course").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.OutcomeNotEnrolled, nil
	}

	return models.OutcomeUnenrolled, nil
}

// DeleteStudentWithEnrollments removes every enrollment row for the
// student and then the student record, as one atomic unit. Either both
// deletes commit or neither does.
func (r *EnrollmentRepository) DeleteStudentWithEnrollments(ctx context.Context, studentID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteEnrollments := squirrel.Delete("student_course").
		Where("student_id = ?", studentID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := deleteEnrollments.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	deleteStudent := squirrel.Delete("students").
		Where("id = ?", studentID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = deleteStudent.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// GetEnrollmentCountsByCourseIDs retrieves the number of enrolled
// students for each course that has at least one enrollment.
func (r *EnrollmentRepository) GetEnrollmentCountsByCourseIDs(ctx context.Context) (map[int64]int, error) {
	query := squirrel.Select("course_id", "COUNT(*)").
		From("student_course").
		GroupBy("course_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var courseID int64
		var count int
		if err := rows.Scan(&courseID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[courseID] = count
	}

	return counts, nil
}

// GetCourseNamesByStudentIDs retrieves, for each given student, the
// names of the courses they are enrolled in.
func (r *EnrollmentRepository) GetCourseNamesByStudentIDs(ctx context.Context, studentIDs []int64) (map[int64][]string, error) {
	if len(studentIDs) == 0 {
		return make(map[int64][]string), nil
	}

	query := squirrel.Select("sc.student_id", "c.name").
		From("student_course sc").
		Join("courses c ON c.id = sc.course_id").
		Where(squirrel.Eq{"sc.student_id": studentIDs}).
		OrderBy("c.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	names := make(map[int64][]string)
	for rows.Next() {
		var studentID int64
		var courseName string
		if err := rows.Scan(&studentID, &courseName); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		names[studentID] = append(names[studentID], courseName)
	}

	return names, nil
}

// GetStudentsByCourseID retrieves the roster for a course
func (r *EnrollmentRepository) GetStudentsByCourseID(ctx context.Context, courseID int64) ([]*models.Student, error) {
	query := squirrel.Select("s.id", "s.name", "s.email").
		From("student_course sc").
		Join("students s ON s.id = sc.student_id").
		Where("sc.course_id = ?", courseID).
		OrderBy("s.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Email); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, &student)
	}

	return students, nil
}

// lockRow takes a FOR UPDATE lock on a single row by id, returning
// pgx.ErrNoRows if the row does not exist.
func lockRow(ctx context.Context, tx pgx.Tx, table string, id int64) error {
	query := squirrel.Select("id").
		From(table).
		Where("id = ?", id).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	var locked int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// pairExists reports whether the (student, course) pair is enrolled
func (r *EnrollmentRepository) pairExists(ctx context.Context, tx pgx.Tx, studentID, courseID int64) (bool, error) {
	query := squirrel.Select("1").
		From("student_course").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	if err := tx.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// countWhere counts enrollment rows matching the predicate
func countWhere(ctx context.Context, tx pgx.Tx, pred squirrel.Eq) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("student_course").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}
