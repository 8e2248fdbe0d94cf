package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/coursegrid/coursegrid/internal/app/models/dto"
	"github.com/coursegrid/coursegrid/internal/app/services"
	"github.com/coursegrid/coursegrid/internal/middleware"
)

const msgStudentDeleted = "Student and all associated course enrollments deleted successfully"

// StudentController handles operations on the authenticated student's
// own account.
type StudentController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// DeleteStudent removes the authenticated student together with every
// enrollment they hold, in a single transaction.
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Could not validate user.")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.enrollmentService.DeleteStudent(ctx.Request.Context(), identity); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("student_id", identity.ID).Msg("Student account deleted")
	ctx.JSON(http.StatusOK, dto.NewMessageResponse(msgStudentDeleted))
}
