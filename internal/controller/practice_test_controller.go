package controller

import (
	"strconv"

	"studyset_backend/internal/repository"
	"studyset_backend/internal/service"
	"studyset_backend/internal/util"
	"studyset_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type PracticeTestController struct {
	Service *service.PracticeTestService
}

func NewPracticeTestController(svc *service.PracticeTestService) *PracticeTestController {
	return &PracticeTestController{Service: svc}
}

// @Summary Create a practice test with its questions and options
// @Tags practice-tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreatePracticeTestReq true "practice test payload"
// @Success 201 {object} util.Response
// @Router /api/practice-tests [post]
func (c *PracticeTestController) CreateTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreatePracticeTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	testID, err := c.Service.CreatePracticeTest(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"practiceTestId": testID})
}

// @Summary Update a practice test (rename, add/edit questions and options)
// @Tags practice-tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "practice test id"
// @Param body body service.UpdatePracticeTestReq true "update payload"
// @Success 200 {object} util.Response
// @Router /api/practice-tests/{id} [put]
func (c *PracticeTestController) UpdateTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdatePracticeTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.UpdatePracticeTest(user.UserID, ctx.Param("id"), req); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Get full practice test detail in stable order
// @Tags practice-tests
// @Produce json
// @Param id path string true "practice test id"
// @Success 200 {object} util.Response
// @Router /api/practice-tests/{id} [get]
func (c *PracticeTestController) GetDetail(ctx *gin.Context) {
	detail, err := c.Service.GetPracticeTestDetail(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Get a random subset of questions for quiz taking
// @Tags practice-tests
// @Produce json
// @Param id path string true "practice test id"
// @Param count query int true "number of questions"
// @Success 200 {object} util.Response
// @Router /api/practice-tests/{id}/random [get]
func (c *PracticeTestController) GetRandomQuestions(ctx *gin.Context) {
	count, err := strconv.Atoi(ctx.Query("count"))
	if err != nil {
		util.BadRequest(ctx, "count must be a number")
		return
	}

	detail, err := c.Service.GetRandomQuestions(ctx.Param("id"), count)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

type deleteOptionsReq struct {
	Options []repository.OptionRef `json:"options" binding:"required"`
}

// @Summary Delete answer options of a practice test
// @Tags practice-tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "practice test id"
// @Success 200 {object} util.Response
// @Router /api/practice-tests/{id}/options [delete]
func (c *PracticeTestController) DeleteOptions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req deleteOptionsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deleted, err := c.Service.DeleteOptions(user.UserID, ctx.Param("id"), req.Options)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": deleted})
}

type deleteQuestionsReq struct {
	QuestionIDs []string `json:"questionIds" binding:"required"`
}

// @Summary Delete questions (with their options) of a practice test
// @Tags practice-tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "practice test id"
// @Success 200 {object} util.Response
// @Router /api/practice-tests/{id}/questions [delete]
func (c *PracticeTestController) DeleteQuestions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req deleteQuestionsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deleted, err := c.Service.DeleteQuestions(user.UserID, ctx.Param("id"), req.QuestionIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": deleted})
}

// @Summary Delete a practice test and everything it owns
// @Tags practice-tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "practice test id"
// @Success 200 {object} util.Response
// @Router /api/practice-tests/{id} [delete]
func (c *PracticeTestController) DeleteTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	deleted, err := c.Service.DeletePracticeTest(user.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": deleted})
}

// @Summary Submit a scored attempt
// @Tags practice-tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "practice test id"
// @Param body body service.SubmitTestReq true "answers and score"
// @Success 201 {object} util.Response
// @Router /api/practice-tests/{id}/submit [post]
func (c *PracticeTestController) SubmitTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resultID, err := c.Service.SubmitTest(user.UserID, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	monitoring.SubmissionCounter.Inc()
	util.Created(ctx, gin.H{"resultId": resultID})
}

// @Summary List my attempt history
// @Tags practice-tests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/history [get]
func (c *PracticeTestController) ListMyHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.Service.ListMyHistory(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// @Summary Get one attempt with its answers
// @Tags practice-tests
// @Produce json
// @Security ApiKeyAuth
// @Param resultId path string true "result id"
// @Success 200 {object} util.Response
// @Router /api/history/{resultId} [get]
func (c *PracticeTestController) GetHistoryDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.Service.GetHistoryDetail(user.UserID, ctx.Param("resultId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}
