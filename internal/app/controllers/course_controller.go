package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/coursegrid/coursegrid/internal/app/models"
	"github.com/coursegrid/coursegrid/internal/app/models/dto"
	"github.com/coursegrid/coursegrid/internal/app/services"
	"github.com/coursegrid/coursegrid/internal/middleware"
)

// Outcome messages for the enroll/unenroll endpoints. Rule rejections
// are reported with a 200 status and one of these messages; clients
// tell them apart from errors by status family alone.
const (
	msgEnrolled            = "Enrollement successful!"
	msgAlreadyEnrolled     = "You have already enrolled for this course."
	msgStudentLimitReached = "You have enrolled two courses which is the limit"
	msgCourseLimitReached  = "Enrollment limit achieved for the course!"
	msgUnenrolled          = "Course unenrollment successful!"
	msgNotEnrolled         = "Course enrollment not found."
)

// CourseController handles enrollment and unenrollment
type CourseController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Enroll adds the authenticated student to the course named in the
// form body.
func (c *CourseController) Enroll(ctx *gin.Context) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Could not validate user.")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.EnrollRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Course name is required")
		errorDetail = errorDetail.WithField("course")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	outcome, err := c.enrollmentService.Enroll(ctx.Request.Context(), identity, req.Course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(enrollOutcomeMessage(outcome)))
}

// Unenroll removes the authenticated student from the course named in
// the form body.
func (c *CourseController) Unenroll(ctx *gin.Context) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Could not validate user.")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.EnrollRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Course name is required")
		errorDetail = errorDetail.WithField("course")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	outcome, err := c.enrollmentService.Unenroll(ctx.Request.Context(), identity, req.Course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(enrollOutcomeMessage(outcome)))
}

// enrollOutcomeMessage maps a ledger outcome to its public message
func enrollOutcomeMessage(outcome models.EnrollOutcome) string {
	switch outcome {
	case models.OutcomeAlreadyEnrolled:
		return msgAlreadyEnrolled
	case models.OutcomeStudentLimitReached:
		return msgStudentLimitReached
	case models.OutcomeCourseLimitReached:
		return msgCourseLimitReached
	case models.OutcomeUnenrolled:
		return msgUnenrolled
	case models.OutcomeNotEnrolled:
		return msgNotEnrolled
	default:
		return msgEnrolled
	}
}
