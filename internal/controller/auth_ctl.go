package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/middleware"
	"reviewhub/internal/service"
)

type AuthController struct {
	authSvc *service.AuthService
}

func NewAuthController(authSvc *service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Login 登录
// @Summary 登录
// @Description 邮箱密码登录，返回 access / refresh Token 对
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginReq true "登录凭证"
// @Success 200 {object} dto.TokenResp "Token 对"
// @Failure 401 {object} dto.ErrorResp "凭证错误"
// @Failure 403 {object} dto.ErrorResp "账号被封禁"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.authSvc.Login(ctx.Request.Context(), &req)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Refresh 刷新 Token
// @Summary 刷新 Token
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RefreshReq true "Refresh Token"
// @Success 200 {object} dto.TokenResp "新 Token 对"
// @Failure 401 {object} dto.ErrorResp "Token 无效"
// @Router /api/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.authSvc.Refresh(ctx.Request.Context(), &req)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Me 当前用户
// @Summary 当前用户
// @Tags Auth (认证)
// @Produce json
// @Success 200 {object} dto.UserDetailResp "当前用户"
// @Failure 401 {object} dto.ErrorResp "未登录"
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authSvc.CurrentUser(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserDetailResp{User: *user})
}
