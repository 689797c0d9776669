package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

type UserController struct {
	userSvc *service.UserService
}

func NewUserController(userSvc *service.UserService) *UserController {
	return &UserController{userSvc: userSvc}
}

// ListUsers 用户列表
// @Summary 用户列表
// @Tags User (用户管理)
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param status query string false "状态筛选: active | inactive | suspended"
// @Param role query string false "角色筛选"
// @Param search query string false "邮箱/昵称关键词"
// @Success 200 {object} dto.UserListResp "用户列表"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	filter := repository.UserFilter{
		Status:  model.UserStatus(ctx.Query("status")),
		Role:    ctx.Query("role"),
		Keyword: ctx.Query("search"),
		Page:    queryInt(ctx, "page"),
		Limit:   queryInt(ctx, "limit"),
	}

	users, total, err := c.userSvc.ListUsers(ctx.Request.Context(), filter)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserListResp{
		Users:      users,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	})
}

// GetUser 用户详情
// @Summary 用户详情
// @Tags User (用户管理)
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} dto.UserDetailResp "用户详情"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userSvc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserDetailResp{User: *user})
}

// CreateUser 创建用户
// @Summary 创建用户
// @Tags User (用户管理)
// @Accept json
// @Produce json
// @Param request body dto.UserInput true "用户信息"
// @Success 201 {object} dto.UserDetailResp "创建成功"
// @Failure 409 {object} dto.ErrorResp "邮箱已注册"
// @Router /api/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var input dto.UserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	user, err := c.userSvc.CreateUser(ctx.Request.Context(), &input)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.UserDetailResp{User: *user})
}

// Suspend 封禁用户
// @Summary 封禁用户
// @Description until 为空表示永久封禁；type: account | email
// @Tags User (用户管理)
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param request body dto.SuspendReq true "封禁信息"
// @Success 200 {object} dto.UserDetailResp "封禁成功"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/users/{id}/suspend [post]
func (c *UserController) Suspend(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SuspendReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	user, err := c.userSvc.Suspend(ctx.Request.Context(), id, &req)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserDetailResp{User: *user})
}

// Unsuspend 解封用户
// @Summary 解封用户
// @Tags User (用户管理)
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} dto.UserDetailResp "解封成功"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/users/{id}/unsuspend [post]
func (c *UserController) Unsuspend(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userSvc.Unsuspend(ctx.Request.Context(), id)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserDetailResp{User: *user})
}

// BulkAction 批量操作
// @Summary 用户批量操作
// @Description action: activate | deactivate | delete；逐条执行，部分失败不回滚
// @Tags User (用户管理)
// @Accept json
// @Produce json
// @Param request body dto.BulkReq true "批量请求"
// @Success 200 {object} dto.BulkResp "逐条结果"
// @Failure 400 {object} dto.ErrorResp "未知操作"
// @Router /api/users/bulk [post]
func (c *UserController) BulkAction(ctx *gin.Context) {
	var req dto.BulkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	results, err := c.userSvc.BulkAction(ctx.Request.Context(), req.Action, req.IDs)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewBulkResp(results))
}
