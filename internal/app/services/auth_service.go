package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coursegrid/coursegrid/internal/app/models"
	"github.com/coursegrid/coursegrid/internal/app/models/dto"
	"github.com/coursegrid/coursegrid/internal/app/repositories"
	"github.com/coursegrid/coursegrid/internal/pkg/apperrors"
	"github.com/coursegrid/coursegrid/internal/pkg/auth"
)

const (
	minNameLength     = 4
	minPasswordLength = 6
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService defines the interface for registration and login
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.CreateStudentRequest) (int64, error)
	Login(ctx context.Context, email, password string) (*dto.TokenResponse, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	studentRepo *repositories.StudentRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(studentRepo *repositories.StudentRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		studentRepo: studentRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// validateRegistration validates registration data before touching the store
func (s *authServiceImpl) validateRegistration(req *dto.CreateStudentRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", apperrors.ErrValidationFailed)
	}

	if len(strings.TrimSpace(req.Name)) < minNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", apperrors.ErrValidationFailed, minNameLength)
	}

	if !emailRegex.MatchString(req.Email) {
		return fmt.Errorf("%w: malformed email address", apperrors.ErrInvalidEmail)
	}

	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrInvalidPassword, minPasswordLength)
	}

	return nil
}

// RegisterStudent registers a new student. Only the salted bcrypt hash
// of the password is persisted, never the plaintext. Emails are unique
// with a case-sensitive exact match.
func (s *authServiceImpl) RegisterStudent(ctx context.Context, req *dto.CreateStudentRequest) (int64, error) {
	if err := s.validateRegistration(req); err != nil {
		return 0, err
	}

	exists, err := s.studentRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return 0, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}

	// The unique constraint catches registrations racing past the
	// pre-check; the repository maps it to ErrEmailAlreadyExists.
	id, err := s.studentRepo.CreateStudent(ctx, student)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("studentID", id).Msg("Student registered")

	return id, nil
}

// Login authenticates a student by email and password and issues a
// signed access token.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	student, err := s.studentRepo.GetStudentByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if !auth.CheckPassword(student.HashedPassword, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(student.ID, student.Name, student.Email)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
