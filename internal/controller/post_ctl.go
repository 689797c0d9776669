package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

type PostController struct {
	postSvc *service.PostService
}

func NewPostController(postSvc *service.PostService) *PostController {
	return &PostController{postSvc: postSvc}
}

// ListPosts 文章列表
// @Summary 文章列表
// @Description 分页查询文章，默认不含回收站；status=trash 查回收站
// @Tags Post (内容管理)
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param status query string false "状态筛选"
// @Param categoryId query int false "分类筛选"
// @Param search query string false "标题/slug 关键词"
// @Param dateFrom query string false "创建起始日期"
// @Param dateTo query string false "创建截止日期"
// @Success 200 {object} dto.PostListResp "文章列表"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	filter := repository.PostFilter{
		Status:     model.PostStatus(ctx.Query("status")),
		CategoryID: queryInt64(ctx, "categoryId"),
		Keyword:    ctx.Query("search"),
		DateFrom:   queryDate(ctx, "dateFrom"),
		DateTo:     queryDate(ctx, "dateTo"),
		Page:       queryInt(ctx, "page"),
		Limit:      queryInt(ctx, "limit"),
	}

	posts, total, err := c.postSvc.ListPosts(ctx.Request.Context(), filter)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PostListResp{
		Posts:      posts,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	})
}

// GetPost 文章详情
// @Summary 文章详情
// @Tags Post (内容管理)
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} dto.PostDetailResp "文章详情"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	post, err := c.postSvc.GetPost(ctx.Request.Context(), id)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PostDetailResp{Post: *post})
}

// CreatePost 创建文章
// @Summary 创建文章
// @Description action=save_draft 存草稿，action=publish 发布；带未来 scheduledAt 的发布进入定时队列
// @Tags Post (内容管理)
// @Accept json
// @Produce json
// @Param action query string false "save_draft | publish" default(save_draft)
// @Param request body dto.PostInput true "文章内容"
// @Success 201 {object} dto.PostDetailResp "创建成功"
// @Failure 400 {object} dto.ErrorResp "校验失败"
// @Router /api/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	var input dto.PostInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	post, err := c.postSvc.CreatePost(ctx.Request.Context(), &input, ctx.Query("action"))
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.PostDetailResp{Post: *post})
}

// UpdatePost 更新文章
// @Summary 更新文章
// @Tags Post (内容管理)
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param action query string false "save_draft | publish"
// @Param request body dto.PostInput true "文章内容"
// @Success 200 {object} dto.PostDetailResp "更新成功"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var input dto.PostInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	post, err := c.postSvc.UpdatePost(ctx.Request.Context(), id, &input, ctx.Query("action"))
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PostDetailResp{Post: *post})
}

// DeletePost 删除文章
// @Summary 删除文章
// @Description 首次删除进回收站，回收站内再删为物理删除
// @Tags Post (内容管理)
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postSvc.DeletePost(ctx.Request.Context(), id); err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// BulkAction 批量操作
// @Summary 文章批量操作
// @Description action: publish | trash | delete；逐条执行，部分失败不回滚
// @Tags Post (内容管理)
// @Accept json
// @Produce json
// @Param request body dto.BulkReq true "批量请求"
// @Success 200 {object} dto.BulkResp "逐条结果"
// @Failure 400 {object} dto.ErrorResp "未知操作"
// @Router /api/posts/bulk [post]
func (c *PostController) BulkAction(ctx *gin.Context) {
	var req dto.BulkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	results, err := c.postSvc.BulkAction(ctx.Request.Context(), req.Action, req.IDs)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewBulkResp(results))
}
