// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/coursegrid/coursegrid/internal/app/models/dto"
	"github.com/coursegrid/coursegrid/internal/app/services"
	"github.com/coursegrid/coursegrid/internal/middleware"
)

// accessTokenCookie is the cookie carrying the issued token alongside
// the JSON response.
const accessTokenCookie = "access_token"

// AuthController handles registration and login
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// CreateStudent handles student registration. Duplicate emails are a
// 409 conflict, distinct from validation failures.
func (c *AuthController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	id, err := c.authService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Failed to register student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentID", id).Msg("Student created")

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("student created successfully!"))
}

// Login authenticates a student and returns a bearer token. The same
// token is also set as an http-only cookie.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokenResponse, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Session cookie, http-only so scripts cannot read the token
	ctx.SetCookie(accessTokenCookie, tokenResponse.AccessToken, 0, "/", "", false, true)

	ctx.JSON(http.StatusOK, tokenResponse)
}
