package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jiitreviews/backend/internal/app/controllers"
	"github.com/jiitreviews/backend/internal/middleware"
	"github.com/jiitreviews/backend/internal/pkg/apperrors"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	subjectController *controllers.SubjectController,
	teacherController *controllers.TeacherController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Unknown paths get the same error envelope as everything else
	router.NoRoute(func(c *gin.Context) {
		middleware.HandleAPIError(c, apperrors.NewResourceNotFoundError("Route not found"))
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/verify", authController.VerifyOTP)
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password/:token", authController.ResetPassword)
	}

	// --- Public catalog routes ---
	subjects := v1.Group("/subjects")
	{
		subjects.GET("", subjectController.ListSubjects)
		subjects.GET("/:id", subjectController.GetSubject)
	}

	teachers := v1.Group("/teachers")
	{
		teachers.GET("", teacherController.ListTeachers)
		teachers.GET("/:id", teacherController.GetTeacher)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetProfile)

		subjectReviews := authenticated.Group("/subjects/:id/reviews")
		{
			subjectReviews.GET("", subjectController.ListReviews)
			subjectReviews.POST("", subjectController.AddReview)
			subjectReviews.DELETE("/:reviewId", subjectController.DeleteReview)
		}

		teacherReviews := authenticated.Group("/teachers/:id/reviews")
		{
			teacherReviews.GET("", teacherController.ListReviews)
			teacherReviews.POST("", teacherController.AddReview)
			teacherReviews.DELETE("/:reviewId", teacherController.DeleteReview)
		}
	}
}
