package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/coursegrid/coursegrid/internal/app/models"
	"github.com/coursegrid/coursegrid/internal/pkg/apperrors"
	"github.com/coursegrid/coursegrid/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db PgxPool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db PgxPool) *StudentRepository {
	return &StudentRepository{db: db}
}

// CreateStudent inserts a new student and returns its id. A duplicate
// email maps to apperrors.ErrEmailAlreadyExists; the unique constraint
// on the email column is the backstop for concurrent registrations.
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	query := squirrel.Insert("students").
		Columns("name", "email", "hashed_password").
		Values(student.Name, student.Email, student.HashedPassword).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetStudentByEmail retrieves a student by exact email match. Emails
// are compared case-sensitively; no normalization is applied.
func (r *StudentRepository) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := squirrel.Select("id", "name", "email", "hashed_password").
		From("students").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.HashedPassword,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &student, nil
}

// GetStudentByID retrieves a student by id
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	query := squirrel.Select("id", "name", "email", "hashed_password").
		From("students").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.HashedPassword,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &student, nil
}

// EmailExists checks whether a student with the given email is registered
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := squirrel.Select("1").
		From("students").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// ListStudents retrieves a page of students ordered by id
func (r *StudentRepository) ListStudents(ctx context.Context, offset uint64, limit int) ([]*models.Student, error) {
	query := squirrel.Select("id", "name", "email", "hashed_password").
		From("students").
		OrderBy("id ASC").
		Offset(offset).
		Limit(uint64(limit)).
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
		err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.HashedPassword,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, &student)
	}

	return students, nil
}
