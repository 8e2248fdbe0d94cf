package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/coursegrid/coursegrid/internal/app/models/dto"
	"github.com/coursegrid/coursegrid/internal/app/services"
	"github.com/coursegrid/coursegrid/internal/middleware"
	"github.com/coursegrid/coursegrid/internal/pkg/apperrors"
	"github.com/coursegrid/coursegrid/internal/pkg/helpers"
)

// CatalogController serves the public read-only views of the catalog
type CatalogController struct {
	catalogService services.CatalogService
	logger         zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListCourses returns every course with its live enrollment count.
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.catalogService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CourseListResponse{Courses: courses})
}

// ListCourseNames returns the (id, name) projection of the catalog.
func (c *CatalogController) ListCourseNames(ctx *gin.Context) {
	names, err := c.catalogService.ListCourseNames(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CourseListResponse{Courses: names})
}

// ListStudents returns one page of students with their course names.
// The page comes from the path, the page size from the limit query
// parameter.
func (c *CatalogController) ListStudents(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.Param("page"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Page must be an integer")
		errorDetail = errorDetail.WithField("page")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	limit := helpers.ParseLimitParam(ctx)

	students, err := c.catalogService.ListStudents(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentListResponse{Students: students})
}

// CourseParticipants returns a course and its roster. An unknown id
// yields a 404; a known course with nobody enrolled yields an
// informational message instead of an empty roster.
func (c *CatalogController) CourseParticipants(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("course_id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Course id must be an integer")
		errorDetail = errorDetail.WithField("course_id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	participants, err := c.catalogService.CourseParticipants(ctx.Request.Context(), courseID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewMessageResponse("no course found"))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(participants.StudentsEnrolled) == 0 {
		ctx.JSON(http.StatusOK, dto.NewMessageResponse("no students enrolled"))
		return
	}

	ctx.JSON(http.StatusOK, participants)
}
