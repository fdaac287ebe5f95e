package controller

import (
	"studyset_backend/internal/service"
	"studyset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const maxAvatarSize = 5 << 20

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.Service.GetProfile(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"id":        profile.ID,
		"username":  profile.Username,
		"email":     profile.Email,
		"role":      profile.Role,
		"avatarUrl": profile.AvatarURL,
	})
}

// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UpdateProfileReq true "profile fields"
// @Success 200 {object} util.Response
// @Router /api/users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.Service.UpdateProfile(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"id":       profile.ID,
		"username": profile.Username,
		"email":    profile.Email,
	})
}

// @Summary Upload the caller's avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "avatar image"
// @Success 200 {object} util.Response
// @Router /api/users/me/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		util.BadRequest(ctx, "avatar exceeds 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.Service.UploadAvatar(ctx.Request.Context(), user.UserID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatarUrl": url})
}
