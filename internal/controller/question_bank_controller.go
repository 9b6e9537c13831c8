package controller

import (
	"github.com/gin-gonic/gin"

	"schoolhub_backend/internal/middleware"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"
)

type QuestionBankController struct {
	QuestionBankService *service.QuestionBankService
}

func NewQuestionBankController(questionBankService *service.QuestionBankService) *QuestionBankController {
	return &QuestionBankController{QuestionBankService: questionBankService}
}

// CreateQuestion godoc
// @Summary Add a question to the bank
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   body body service.QuestionRequest true "Question, options and answer"
// @Success 201 {object} util.Response{data=model.QuestionBank}
// @Failure 400 {object} util.Response "Bad option count or answer not among options"
// @Router /api/questions [post]
// @Security BearerAuth
func (c *QuestionBankController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionBankService.CreateQuestion(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// GetQuestion godoc
// @Summary Get a bank question
// @Tags questions
// @Produce  json
// @Param   id path string true "Question ID"
// @Success 200 {object} util.Response{data=model.QuestionBank}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [get]
// @Security BearerAuth
func (c *QuestionBankController) GetQuestion(ctx *gin.Context) {
	question, err := c.QuestionBankService.GetQuestion(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// ListQuestions godoc
// @Summary Search the question bank
// @Tags questions
// @Produce  json
// @Param   page query int false "Page"
// @Param   size query int false "Page size"
// @Param   query query string false "Text search"
// @Param   categories query []string false "Category filter, any match"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/questions [get]
// @Security BearerAuth
func (c *QuestionBankController) ListQuestions(ctx *gin.Context) {
	page, size := pageParams(ctx)
	questions, count, err := c.QuestionBankService.ListQuestions(page, size, ctx.Query("query"), ctx.QueryArray("categories"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:       questions,
		Count:      count,
		Page:       page,
		Size:       size,
		TotalPages: util.EstimateTotalPages(count, size),
	})
}

// UpdateQuestion godoc
// @Summary Update a bank question
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   id path string true "Question ID"
// @Param   body body service.QuestionRequest true "Replacement content"
// @Success 200 {object} util.Response{data=model.QuestionBank}
// @Router /api/questions/{id} [put]
// @Security BearerAuth
func (c *QuestionBankController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionBankService.UpdateQuestion(ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a bank question
// @Tags questions
// @Produce  json
// @Param   id path string true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/questions/{id} [delete]
// @Security BearerAuth
func (c *QuestionBankController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionBankService.DeleteQuestion(ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// AddAssessmentQuestion godoc
// @Summary Author or amend a question on an assessment
// @Description Creates a custom question and appends it, or updates an already-attached one in place
// @Tags assessment-questions
// @Accept  json
// @Produce  json
// @Param   id path string true "Assessment ID"
// @Param   body body service.QuestionRequest true "Question content; include id to update"
// @Success 201 {object} util.Response{data=model.QuestionBank}
// @Failure 400 {object} util.Response
// @Router /api/assessments/{id}/questions [post]
// @Security BearerAuth
func (c *QuestionBankController) AddAssessmentQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, created, err := c.QuestionBankService.AddOrUpdateAssessmentQuestion(ctx.Param("id"), req, middleware.CurrentAdmin(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if created {
		util.Created(ctx, question)
		return
	}
	util.Success(ctx, question)
}

// ViewAssessmentQuestions godoc
// @Summary List an assessment's questions for taking
// @Description Returns questions without answers; the caller must be assigned to the assessment
// @Tags assessment-questions
// @Produce  json
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=[]service.TakerQuestion}
// @Failure 403 {object} util.Response "Not assigned"
// @Router /api/assessments/{id}/questions [get]
// @Security BearerAuth
func (c *QuestionBankController) ViewAssessmentQuestions(ctx *gin.Context) {
	questions, err := c.QuestionBankService.ViewAssessmentQuestions(ctx.Param("id"), currentActor(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// RemoveAssessmentQuestion godoc
// @Summary Detach a question from an assessment
// @Tags assessment-questions
// @Produce  json
// @Param   id path string true "Assessment ID"
// @Param   questionId path string true "Question ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Question not attached"
// @Router /api/assessments/{id}/questions/{questionId} [delete]
// @Security BearerAuth
func (c *QuestionBankController) RemoveAssessmentQuestion(ctx *gin.Context) {
	if err := c.QuestionBankService.RemoveQuestionFromAssessment(ctx.Param("id"), ctx.Param("questionId"), middleware.CurrentAdmin(ctx)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
