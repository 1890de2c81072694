package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/jiitreviews/backend/internal/app/models/dto"
	"github.com/jiitreviews/backend/internal/app/services"
	"github.com/jiitreviews/backend/internal/middleware"
)

// SubjectController handles subject listing and subject review operations
type SubjectController struct {
	subjectService services.ISubjectService
	logger         zerolog.Logger
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService services.ISubjectService, logger zerolog.Logger) *SubjectController {
	return &SubjectController{
		subjectService: subjectService,
		logger:         logger,
	}
}

// ListSubjects lists all subjects with aggregate ratings
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.SubjectListItem} "Subjects"
// @Router /subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.subjectService.ListSubjects(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subjects, ""))
}

// GetSubject returns one subject with its full rating summary
// @Summary Get a subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectDetail} "Subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id} [get]
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	subject, err := c.subjectService.GetSubject(ctx.Request.Context(), subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subject, ""))
}

// ListReviews lists a subject's reviews with their aggregate
// @Summary List subject reviews
// @Tags subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectReviewListResponse} "Reviews, newest first"
// @Failure 403 {object} dto.ErrorResponse "Subject not available for the user's campus"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id}/reviews [get]
func (c *SubjectController) ListReviews(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, campus, ok := requireAuthContext(ctx)
	if !ok {
		return
	}

	reviews, err := c.subjectService.ListReviews(ctx.Request.Context(), subjectID, userID, campus)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(reviews, ""))
}

// AddReview submits one review for a subject
// @Summary Add a subject review
// @Tags subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.AddSubjectReviewRequest true "Ratings and optional text"
// @Success 201 {object} dto.APIResponse{data=dto.SubjectReviewResponse} "Created review"
// @Failure 403 {object} dto.ErrorResponse "Subject not available for the user's campus"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "User already reviewed this subject"
// @Router /subjects/{id}/reviews [post]
func (c *SubjectController) AddReview(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, campus, ok := requireAuthContext(ctx)
	if !ok {
		return
	}

	var req dto.AddSubjectReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid subject review payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	review, err := c.subjectService.AddReview(ctx.Request.Context(), subjectID, userID, campus, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(review, "Review added successfully"))
}

// DeleteReview removes the caller's own review from a subject
// @Summary Delete a subject review
// @Tags subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param reviewId path int true "Review ID"
// @Success 200 {object} dto.APIResponse "Review deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the review author"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Router /subjects/{id}/reviews/{reviewId} [delete]
func (c *SubjectController) DeleteReview(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx, "id")
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

	if err := c.subjectService.DeleteReview(ctx.Request.Context(), subjectID, reviewID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Review deleted successfully"))
}

// parseIDParam reads a positive integer path parameter, responding 400 itself
// when the value is malformed.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// requireAuthContext reads the identity placed in the context by JWTAuth,
// responding 401 itself when it is missing.
func requireAuthContext(ctx *gin.Context) (int64, string, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, "", false
	}
	campus, ok := middleware.GetCampus(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, "", false
	}
	return userID, campus, true
}
