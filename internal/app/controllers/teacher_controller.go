package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/jiitreviews/backend/internal/app/models/dto"
	"github.com/jiitreviews/backend/internal/app/services"
	"github.com/jiitreviews/backend/internal/middleware"
)

// TeacherController handles teacher listing and teacher review operations
type TeacherController struct {
	teacherService services.ITeacherService
	logger         zerolog.Logger
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.ITeacherService, logger zerolog.Logger) *TeacherController {
	return &TeacherController{
		teacherService: teacherService,
		logger:         logger,
	}
}

// ListTeachers lists all teachers with aggregate ratings
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.TeacherListItem} "Teachers"
// @Router /teachers [get]
func (c *TeacherController) ListTeachers(ctx *gin.Context) {
	teachers, err := c.teacherService.ListTeachers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(teachers, ""))
}

// GetTeacher returns one teacher with their full rating summary
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherDetail} "Teacher"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [get]
func (c *TeacherController) GetTeacher(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	teacher, err := c.teacherService.GetTeacher(ctx.Request.Context(), teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(teacher, ""))
}

// ListReviews lists a teacher's reviews with their aggregate
// @Summary List teacher reviews
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherReviewListResponse} "Reviews, newest first"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id}/reviews [get]
func (c *TeacherController) ListReviews(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	reviews, err := c.teacherService.ListReviews(ctx.Request.Context(), teacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(reviews, ""))
}

// AddReview submits one review for a teacher
// @Summary Add a teacher review
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param request body dto.AddTeacherReviewRequest true "Ratings and optional text"
// @Success 201 {object} dto.APIResponse{data=dto.TeacherReviewResponse} "Created review"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 409 {object} dto.ErrorResponse "User already reviewed this teacher"
// @Router /teachers/{id}/reviews [post]
func (c *TeacherController) AddReview(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _, ok := requireAuthContext(ctx)
	if !ok {
		return
	}

	var req dto.AddTeacherReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid teacher review payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	review, err := c.teacherService.AddReview(ctx.Request.Context(), teacherID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(review, "Review added successfully"))
}

// DeleteReview removes the caller's own review from a teacher
// @Summary Delete a teacher review
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param reviewId path int true "Review ID"
// @Success 200 {object} dto.APIResponse "Review deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the review author"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Router /teachers/{id}/reviews/{reviewId} [delete]
func (c *TeacherController) DeleteReview(ctx *gin.Context) {
	teacherID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(ctx, "reviewId")
	if !ok {
		return
	}
	userID, _, ok := requireAuthContext(ctx)
	if !ok {
		return
	}

	if err := c.teacherService.DeleteReview(ctx.Request.Context(), teacherID, reviewID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Review deleted successfully"))
}
