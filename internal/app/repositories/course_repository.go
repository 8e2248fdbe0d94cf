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

// CourseRepository handles database operations for the course catalog
type CourseRepository struct {
	db PgxPool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db PgxPool) *CourseRepository {
	return &CourseRepository{db: db}
}

// GetCourseByName retrieves a course by its unique name (exact match)
func (r *CourseRepository) GetCourseByName(ctx context.Context, name string) (*models.Course, error) {
	query := squirrel.Select("id", "name", "instructor", "description").
		From("courses").
		Where("name = ?", name).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID,
		&course.Name,
		&course.Instructor,
		&course.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &course, nil
}

// GetCourseByID retrieves a course by id
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query := squirrel.Select("id", "name", "instructor", "description").
		From("courses").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID,
		&course.Name,
		&course.Instructor,
		&course.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &course, nil
}

// GetAllCourses retrieves the full course catalog ordered by id
func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	query := squirrel.Select("id", "name", "instructor", "description").
		From("courses").
		OrderBy("id ASC").
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

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Instructor,
			&course.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, &course)
	}

	return courses, nil
}

// CreateCourse inserts a course into the catalog. Only the seeder uses
// this; there is no API endpoint for course creation.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	query := squirrel.Insert("courses").
		Columns("name", "instructor", "description").
		Values(course.Name, course.Instructor, course.Description).
		Suffix("ON CONFLICT (name) DO NOTHING RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict target hit: the course already exists
			return 0, nil
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}
