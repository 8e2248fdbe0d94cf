package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coursegrid/coursegrid/internal/app/controllers"
	"github.com/coursegrid/coursegrid/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public catalog routes ---
	router.GET("/", catalogController.ListCourses)
	router.GET("/course_names", catalogController.ListCourseNames)
	router.GET("/all_students/:page", catalogController.ListStudents)
	router.GET("/course_participants/:course_id", catalogController.CourseParticipants)

	// --- Public auth routes ---
	auth := router.Group("/auth")
	{
		auth.POST("/create_student", authController.CreateStudent)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated enrollment routes ---
	course := router.Group("/course")
	course.Use(authMiddleware.JWTAuth())
	{
		course.POST("/enroll", courseController.Enroll)
		course.DELETE("/unenroll", courseController.Unenroll)
	}

	// --- Authenticated account routes ---
	del := router.Group("/delete")
	del.Use(authMiddleware.JWTAuth())
	{
		del.DELETE("/student", studentController.DeleteStudent)
	}
}
