package services

import (
	"context"
	"fmt"

	"github.com/coursegrid/coursegrid/internal/app/models/dto"
	"github.com/coursegrid/coursegrid/internal/app/repositories"
	"github.com/coursegrid/coursegrid/internal/pkg/apperrors"
	"github.com/coursegrid/coursegrid/internal/pkg/helpers"
)

// CatalogService defines the read-only projections composed from the
// course catalog, the student store and the enrollment ledger.
type CatalogService interface {
	ListCourses(ctx context.Context) ([]dto.CourseWithEnrollment, error)
	ListCourseNames(ctx context.Context) ([]dto.CourseNameEntry, error)
	ListStudents(ctx context.Context, page, limit int) ([]dto.StudentWithCourses, error)
	CourseParticipants(ctx context.Context, courseID int64) (*dto.CourseParticipantsResponse, error)
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	courseRepo     *repositories.CourseRepository
	studentRepo    *repositories.StudentRepository
	enrollmentRepo *repositories.EnrollmentRepository
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(
	courseRepo *repositories.CourseRepository,
	studentRepo *repositories.StudentRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
) CatalogService {
	return &catalogServiceImpl{
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// ListCourses retrieves the catalog with the computed enrollment count
// per course.
func (s *catalogServiceImpl) ListCourses(ctx context.Context) ([]dto.CourseWithEnrollment, error) {
	courses, err := s.courseRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	counts, err := s.enrollmentRepo.GetEnrollmentCountsByCourseIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollment counts: %w", err)
	}

	result := make([]dto.CourseWithEnrollment, 0, len(courses))
	for _, course := range courses {
		result = append(result, dto.CourseWithEnrollment{
			ID:          course.ID,
			CourseName:  course.Name,
			Instructor:  course.Instructor,
			Description: course.Description,
			Enrolled:    counts[course.ID],
		})
	}

	return result, nil
}

// ListCourseNames retrieves the lightweight (id, name) projection.
func (s *catalogServiceImpl) ListCourseNames(ctx context.Context) ([]dto.CourseNameEntry, error) {
	courses, err := s.courseRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	result := make([]dto.CourseNameEntry, 0, len(courses))
	for _, course := range courses {
		result = append(result, dto.CourseNameEntry{
			ID:         course.ID,
			CourseName: course.Name,
		})
	}

	return result, nil
}

// ListStudents retrieves a page of students, each with the names of
// their enrolled courses. Pages are 1-based; out-of-range pages clamp
// rather than error.
func (s *catalogServiceImpl) ListStudents(ctx context.Context, page, limit int) ([]dto.StudentWithCourses, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	students, err := s.studentRepo.ListStudents(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	studentIDs := make([]int64, 0, len(students))
	for _, student := range students {
		studentIDs = append(studentIDs, student.ID)
	}

	courseNames, err := s.enrollmentRepo.GetCourseNamesByStudentIDs(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrolled courses: %w", err)
	}

	result := make([]dto.StudentWithCourses, 0, len(students))
	for _, student := range students {
		names := courseNames[student.ID]
		if names == nil {
			names = []string{}
		}
		result = append(result, dto.StudentWithCourses{
			ID:              student.ID,
			Name:            student.Name,
			Email:           student.Email,
			CoursesEnrolled: names,
		})
	}

	return result, nil
}

// CourseParticipants retrieves the roster for a course. An unknown
// course id is an error; an empty roster is a valid result the
// controller reports as an informational outcome.
func (s *catalogServiceImpl) CourseParticipants(ctx context.Context, courseID int64) (*dto.CourseParticipantsResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	students, err := s.enrollmentRepo.GetStudentsByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving roster: %w", err)
	}

	enrolled := make([]dto.StudentInfo, 0, len(students))
	for _, student := range students {
		enrolled = append(enrolled, dto.StudentInfo{
			ID:    student.ID,
			Name:  student.Name,
			Email: student.Email,
		})
	}

	return &dto.CourseParticipantsResponse{
		Course: []dto.CourseRef{
			{ID: course.ID, Name: course.Name},
		},
		StudentsEnrolled: enrolled,
	}, nil
}
