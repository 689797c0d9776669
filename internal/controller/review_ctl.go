package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

type ReviewController struct {
	reviewSvc *service.ReviewService
}

func NewReviewController(reviewSvc *service.ReviewService) *ReviewController {
	return &ReviewController{reviewSvc: reviewSvc}
}

// ==================== 评价 ====================

// ListReviews 评价列表
// @Summary 评价列表
// @Tags Review (评价管理)
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param merchantId query int false "商家筛选"
// @Param userId query int false "用户筛选"
// @Param status query string false "状态筛选: active | hidden | spam"
// @Param rating query int false "星级筛选"
// @Param search query string false "标题/内容关键词"
// @Success 200 {object} dto.ReviewListResp "评价列表"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/reviews [get]
func (c *ReviewController) ListReviews(ctx *gin.Context) {
	filter := repository.ReviewFilter{
		MerchantID: queryInt64(ctx, "merchantId"),
		UserID:     queryInt64(ctx, "userId"),
		Status:     model.ReviewStatus(ctx.Query("status")),
		Rating:     queryInt(ctx, "rating"),
		Keyword:    ctx.Query("search"),
		Page:       queryInt(ctx, "page"),
		Limit:      queryInt(ctx, "limit"),
	}

	reviews, total, err := c.reviewSvc.ListReviews(ctx.Request.Context(), filter)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReviewListResp{
		Reviews:    reviews,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	})
}

// GetReview 评价详情
// @Summary 评价详情
// @Tags Review (评价管理)
// @Produce json
// @Param id path int true "评价ID"
// @Success 200 {object} dto.ReviewDetailResp "评价详情"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/reviews/{id} [get]
func (c *ReviewController) GetReview(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	review, err := c.reviewSvc.GetReview(ctx.Request.Context(), id)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReviewDetailResp{Review: *review})
}

// CreateReview 创建评价
// @Summary 创建评价
// @Description 商家关闭评价开关时拒绝；成功后刷新商家评分统计
// @Tags Review (评价管理)
// @Accept json
// @Produce json
// @Param request body dto.ReviewInput true "评价内容"
// @Success 201 {object} dto.ReviewDetailResp "创建成功"
// @Failure 400 {object} dto.ErrorResp "校验失败"
// @Router /api/reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	var input dto.ReviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	review, err := c.reviewSvc.CreateReview(ctx.Request.Context(), &input)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ReviewDetailResp{Review: *review})
}

// DeleteReview 删除评价
// @Summary 删除评价
// @Description 连带删除全部评论，并刷新商家评分统计
// @Tags Review (评价管理)
// @Produce json
// @Param id path int true "评价ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/reviews/{id} [delete]
func (c *ReviewController) DeleteReview(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.reviewSvc.DeleteReview(ctx.Request.Context(), id); err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// ==================== 评论 ====================

// ListComments 评价下的评论列表
// @Summary 评论列表
// @Tags Review (评价管理)
// @Produce json
// @Param id path int true "评价ID"
// @Success 200 {object} dto.CommentListResp "评论列表"
// @Failure 404 {object} dto.ErrorResp "评价不存在"
// @Router /api/reviews/{id}/comments [get]
func (c *ReviewController) ListComments(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	comments, err := c.reviewSvc.ListComments(ctx.Request.Context(), id)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CommentListResp{Comments: comments})
}

// CreateComment 创建评论
// @Summary 创建评论
// @Description reaction 仅接受固定表情集合；商家关闭评论开关时拒绝
// @Tags Review (评价管理)
// @Accept json
// @Produce json
// @Param id path int true "评价ID"
// @Param request body dto.CommentInput true "评论内容"
// @Success 201 {object} model.Comment "创建成功"
// @Failure 400 {object} dto.ErrorResp "校验失败"
// @Router /api/reviews/{id}/comments [post]
func (c *ReviewController) CreateComment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var input dto.CommentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	comment, err := c.reviewSvc.CreateComment(ctx.Request.Context(), id, &input)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Tags Review (评价管理)
// @Produce json
// @Param id path int true "评论ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/comments/{id} [delete]
func (c *ReviewController) DeleteComment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.reviewSvc.DeleteComment(ctx.Request.Context(), id); err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
