package controller

import (
	"github.com/gin-gonic/gin"

	"schoolhub_backend/internal/middleware"
	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	GradingService    *service.GradingService
}

func NewAssessmentController(assessmentService *service.AssessmentService, gradingService *service.GradingService) *AssessmentController {
	return &AssessmentController{
		AssessmentService: assessmentService,
		GradingService:    gradingService,
	}
}

// CreateAssessment godoc
// @Summary Create an assessment
// @Description Persists the assessment, its question order, and the audience fan-out in one transaction
// @Tags assessments
// @Accept  json
// @Produce  json
// @Param   body body service.AssessmentRequest true "Assessment details"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response "No questions or invalid grading policy"
// @Failure 403 {object} util.Response
// @Router /api/assessments [post]
// @Security BearerAuth
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.CreateAssessment(req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}

// ListAssessments godoc
// @Summary List assessments
// @Tags assessments
// @Produce  json
// @Param   page query int false "Page"
// @Param   size query int false "Page size"
// @Param   query query string false "Name search"
// @Param   schoolId query string false "School filter"
// @Param   targetAudience query string false "Audience filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessments [get]
// @Security BearerAuth
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	page, size := pageParams(ctx)
	filter := repository.AssessmentFilter{
		Query:          ctx.Query("query"),
		SchoolID:       ctx.Query("schoolId"),
		TargetAudience: model.TargetAudience(ctx.Query("targetAudience")),
		Page:           page,
		Size:           size,
	}

	assessments, count, err := c.AssessmentService.ListAssessments(filter)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:       assessments,
		Count:      count,
		Page:       page,
		Size:       size,
		TotalPages: util.EstimateTotalPages(count, size),
	})
}

// GetAssessment godoc
// @Summary View an assessment
// @Description Question visibility depends on who is asking and whether the assessment has started
// @Tags assessments
// @Produce  json
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
// @Security BearerAuth
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	assessment, err := c.AssessmentService.ViewSingleAssessment(ctx.Param("id"), currentActor(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// UpdateAssessment godoc
// @Summary Update an assessment
// @Tags assessments
// @Accept  json
// @Produce  json
// @Param   id path string true "Assessment ID"
// @Param   body body service.AssessmentUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/assessments/{id} [put]
// @Security BearerAuth
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	var req service.AssessmentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.AssessmentService.UpdateAssessment(ctx.Param("id"), req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// DeleteAssessment godoc
// @Summary Delete an assessment
// @Description Removes the assessment with its question attachments and takers
// @Tags assessments
// @Produce  json
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id} [delete]
// @Security BearerAuth
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	if err := c.AssessmentService.DeleteAssessment(ctx.Param("id"), middleware.CurrentAdmin(ctx)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// GradeAssessment godoc
// @Summary Grade an assessment
// @Description Scores every completed, ungraded taker in one batch
// @Tags assessments
// @Produce  json
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=service.GradingSummary}
// @Failure 400 {object} util.Response "Assessment is not gradable"
// @Router /api/assessments/{id}/grade [post]
// @Security BearerAuth
func (c *AssessmentController) GradeAssessment(ctx *gin.Context) {
	summary, err := c.GradingService.GradeAssessment(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

type assignTakerRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// AssignTaker godoc
// @Summary Assign a user to an assessment
// @Tags takers
// @Accept  json
// @Produce  json
// @Param   id path string true "Assessment ID"
// @Param   body body assignTakerRequest true "User to assign"
// @Success 201 {object} util.Response{data=model.AssessmentTaker}
// @Router /api/assessments/{id}/takers [post]
// @Security BearerAuth
func (c *AssessmentController) AssignTaker(ctx *gin.Context) {
	var req assignTakerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	taker, err := c.AssessmentService.AssignTaker(ctx.Param("id"), req.UserID, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, taker)
}

// ListTakers godoc
// @Summary List an assessment's takers
// @Tags takers
// @Produce  json
// @Param   id path string true "Assessment ID"
// @Param   status query string false "Status filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessments/{id}/takers [get]
// @Security BearerAuth
func (c *AssessmentController) ListTakers(ctx *gin.Context) {
	page, size := pageParams(ctx)
	filter := repository.TakerFilter{
		AssessmentID: ctx.Param("id"),
		Status:       model.TakerStatus(ctx.Query("status")),
		Page:         page,
		Size:         size,
	}

	takers, count, err := c.AssessmentService.ListTakers(filter)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:       takers,
		Count:      count,
		Page:       page,
		Size:       size,
		TotalPages: util.EstimateTotalPages(count, size),
	})
}

// MyTakers godoc
// @Summary List the caller's assigned assessments
// @Tags takers
// @Produce  json
// @Param   status query string false "Status filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/users/me/takers [get]
// @Security BearerAuth
func (c *AssessmentController) MyTakers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, size := pageParams(ctx)
	filter := repository.TakerFilter{
		UserID: claims.SubjectID,
		Status: model.TakerStatus(ctx.Query("status")),
		Page:   page,
		Size:   size,
	}

	takers, count, err := c.AssessmentService.ListTakers(filter)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:       takers,
		Count:      count,
		Page:       page,
		Size:       size,
		TotalPages: util.EstimateTotalPages(count, size),
	})
}

// GetTaker godoc
// @Summary Get the caller's taker record
// @Tags takers
// @Produce  json
// @Param   takerId path string true "Taker ID"
// @Success 200 {object} util.Response{data=model.AssessmentTaker}
// @Failure 403 {object} util.Response "Not your attempt"
// @Failure 404 {object} util.Response
// @Router /api/takers/{takerId} [get]
// @Security BearerAuth
func (c *AssessmentController) GetTaker(ctx *gin.Context) {
	taker, ok := c.ownTaker(ctx)
	if !ok {
		return
	}
	util.Success(ctx, taker)
}

// ownTaker enforces that the authenticated user is the subject of the taker
// row. Admin corrections go through UpdateTaker instead.
func (c *AssessmentController) ownTaker(ctx *gin.Context) (*model.AssessmentTaker, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}

	taker, err := c.AssessmentService.GetTaker(ctx.Param("takerId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return nil, false
	}
	if taker.UserID != claims.SubjectID {
		util.Forbidden(ctx)
		return nil, false
	}
	return taker, true
}

// StartAssessment godoc
// @Summary Start taking an assessment
// @Description Re-entry into an ongoing attempt is allowed; completed attempts cannot be restarted
// @Tags takers
// @Produce  json
// @Param   takerId path string true "Taker ID"
// @Success 200 {object} util.Response{data=model.AssessmentTaker}
// @Failure 400 {object} util.Response "Already completed"
// @Failure 403 {object} util.Response "Not your attempt"
// @Router /api/takers/{takerId}/start [post]
// @Security BearerAuth
func (c *AssessmentController) StartAssessment(ctx *gin.Context) {
	taker, ok := c.ownTaker(ctx)
	if !ok {
		return
	}

	taker, err := c.AssessmentService.StartAssessment(taker.ID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, taker)
}

type submitRequest struct {
	Answers model.AnswerList `json:"answers"`
}

// SubmitAssessment godoc
// @Summary Submit answers
// @Description Accepts partial or empty answer sets; resubmission after completion is rejected
// @Tags takers
// @Accept  json
// @Produce  json
// @Param   takerId path string true "Taker ID"
// @Param   body body submitRequest true "Submitted answers"
// @Success 200 {object} util.Response{data=model.AssessmentTaker}
// @Failure 400 {object} util.Response "Already completed"
// @Router /api/takers/{takerId}/submit [post]
// @Security BearerAuth
func (c *AssessmentController) SubmitAssessment(ctx *gin.Context) {
	var req submitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	taker, ok := c.ownTaker(ctx)
	if !ok {
		return
	}

	taker, err := c.AssessmentService.SubmitAssessment(taker.ID, req.Answers)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, taker)
}

// UpdateTaker godoc
// @Summary Correct a taker record
// @Description Administrative override that bypasses the lifecycle guards
// @Tags takers
// @Accept  json
// @Produce  json
// @Param   takerId path string true "Taker ID"
// @Param   body body service.TakerUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.AssessmentTaker}
// @Router /api/takers/{takerId} [put]
// @Security BearerAuth
func (c *AssessmentController) UpdateTaker(ctx *gin.Context) {
	var req service.TakerUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	taker, err := c.AssessmentService.UpdateTaker(ctx.Param("takerId"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, taker)
}

// DeleteTaker godoc
// @Summary Delete a taker record
// @Tags takers
// @Produce  json
// @Param   takerId path string true "Taker ID"
// @Success 200 {object} util.Response
// @Router /api/takers/{takerId} [delete]
// @Security BearerAuth
func (c *AssessmentController) DeleteTaker(ctx *gin.Context) {
	if err := c.AssessmentService.DeleteTaker(ctx.Param("takerId"), middleware.CurrentAdmin(ctx)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
