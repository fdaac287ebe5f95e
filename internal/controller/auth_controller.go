package controller

import (
	"studyset_backend/internal/service"
	"studyset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterReq true "registration payload"
// @Success 201 {object} util.Response
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Service.Register(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.LoginReq true "credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tokens, user, err := c.Service.Login(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body refreshReq true "refresh token"
// @Success 200 {object} util.Response
// @Router /api/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req refreshReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tokens, err := c.Service.Refresh(req.RefreshToken)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, tokens)
}

// @Summary Invalidate a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req refreshReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.Logout(req.RefreshToken); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
