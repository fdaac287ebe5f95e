package controller

import (
	"studyset_backend/internal/service"
	"studyset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
}

func NewCourseController(svc *service.CourseService) *CourseController {
	return &CourseController{Service: svc}
}

// @Summary Create a course with its cards
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateCourseReq true "course payload"
// @Success 201 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID, err := c.Service.CreateCourse(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"courseId": courseID})
}

// @Summary Update a course (rename, add/edit cards)
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Param body body service.UpdateCourseReq true "update payload"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateCourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.UpdateCourse(user.UserID, ctx.Param("id"), req); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary Get a course with its cards
// @Tags courses
// @Produce json
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetDetail(ctx *gin.Context) {
	detail, err := c.Service.GetCourseDetail(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

type deleteCardsReq struct {
	CardIDs []string `json:"cardIds" binding:"required"`
}

// @Summary Delete cards of a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/cards [delete]
func (c *CourseController) DeleteCards(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req deleteCardsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deleted, err := c.Service.DeleteCards(user.UserID, ctx.Param("id"), req.CardIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": deleted})
}

// @Summary Delete a course and its cards
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	deleted, err := c.Service.DeleteCourse(user.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": deleted})
}
