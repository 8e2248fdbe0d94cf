package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coursegrid/coursegrid/internal/app/models"
	"github.com/coursegrid/coursegrid/internal/app/repositories"
	"github.com/coursegrid/coursegrid/internal/pkg/apperrors"
	"github.com/coursegrid/coursegrid/internal/pkg/auth"
)

// EnrollmentService defines the interface for the enrollment ledger.
// The caller's verified identity is threaded explicitly into every
// operation; there is no ambient user state.
type EnrollmentService interface {
	Enroll(ctx context.Context, identity auth.Identity, courseName string) (models.EnrollOutcome, error)
	Unenroll(ctx context.Context, identity auth.Identity, courseName string) (models.EnrollOutcome, error)
	DeleteStudent(ctx context.Context, identity auth.Identity) error
}

// Limits bundles the configured capacity constants, constructed once
// at startup rather than read from globals.
type Limits struct {
	// StudentCourseLimit is the maximum number of courses per student.
	StudentCourseLimit int
	// CourseCapacity is the maximum number of students per course.
	CourseCapacity int
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollmentRepo *repositories.EnrollmentRepository
	courseRepo     *repositories.CourseRepository
	limits         Limits
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	enrollmentRepo *repositories.EnrollmentRepository,
	courseRepo *repositories.CourseRepository,
	limits Limits,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		limits:         limits,
		logger:         logger,
	}
}

// Enroll adds the student to the named course, subject to the ledger
// invariants. An unknown course is an error; every rule rejection is
// an informational outcome.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, identity auth.Identity, courseName string) (models.EnrollOutcome, error) {
	course, err := s.courseRepo.GetCourseByName(ctx, courseName)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, fmt.Errorf("error resolving course: %w", err)
	}

	outcome, err := s.enrollmentRepo.Enroll(ctx, identity.ID, course.ID, s.limits.StudentCourseLimit, s.limits.CourseCapacity)
	if err != nil {
		return 0, fmt.Errorf("error enrolling student: %w", err)
	}

	if outcome == models.OutcomeEnrolled {
		s.logger.Info().
			Int64("studentID", identity.ID).
			Int64("courseID", course.ID).
			Msg("Student enrolled")
	}

	return outcome, nil
}

// Unenroll removes the student from the named course. An unknown
// course is an error; a pair that was never enrolled is a no-op
// reported as OutcomeNotEnrolled.
func (s *enrollmentServiceImpl) Unenroll(ctx context.Context, identity auth.Identity, courseName string) (models.EnrollOutcome, error) {
	course, err := s.courseRepo.GetCourseByName(ctx, courseName)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, fmt.Errorf("error resolving course: %w", err)
	}

	outcome, err := s.enrollmentRepo.Unenroll(ctx, identity.ID, course.ID)
	if err != nil {
		return 0, fmt.Errorf("error unenrolling student: %w", err)
	}

	if outcome == models.OutcomeUnenrolled {
		s.logger.Info().
			Int64("studentID", identity.ID).
			Int64("courseID", course.ID).
			Msg("Student unenrolled")
	}

	return outcome, nil
}

// DeleteStudent removes the student's enrollments and then the student
// record itself as one atomic unit.
func (s *enrollmentServiceImpl) DeleteStudent(ctx context.Context, identity auth.Identity) error {
	if err := s.enrollmentRepo.DeleteStudentWithEnrollments(ctx, identity.ID); err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error deleting student: %w", err)
	}

	s.logger.Info().Int64("studentID", identity.ID).Msg("Student and enrollments deleted")

	return nil
}
