package controller

import (
	"studyset_backend/internal/model"
	"studyset_backend/internal/service"
	"studyset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Service *service.AdminService
}

func NewAdminController(svc *service.AdminService) *AdminController {
	return &AdminController{Service: svc}
}

// @Summary List all registered users
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	users, err := c.Service.ListUsers(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"role":     u.Role,
			"isActive": u.IsActive,
		})
	}
	util.Success(ctx, gin.H{"users": out})
}

// @Summary Grant the admin role to a user
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "user id"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/grant-admin [post]
func (c *AdminController) GrantAdmin(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	targetID := ctx.Param("id")
	if err := c.Service.GrantAdmin(user.UserID, targetID); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": targetID, "role": model.Admin})
}

// @Summary Lock a user account
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "user id"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/lock [post]
func (c *AdminController) LockUser(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	targetID := ctx.Param("id")
	if err := c.Service.LockUser(user.UserID, targetID); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": targetID, "isActive": false})
}

// @Summary Unlock a user account
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "user id"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/unlock [post]
func (c *AdminController) UnlockUser(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	targetID := ctx.Param("id")
	if err := c.Service.UnlockUser(user.UserID, targetID); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": targetID, "isActive": true})
}
