package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

type PromotionController struct {
	promotionSvc *service.PromotionService
}

func NewPromotionController(promotionSvc *service.PromotionService) *PromotionController {
	return &PromotionController{promotionSvc: promotionSvc}
}

// ListPromotions 促销列表
// @Summary 促销列表
// @Tags Promotion (促销管理)
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param merchantId query int false "商家筛选"
// @Param type query string false "类型筛选: default | common | private"
// @Param active query bool false "仅看生效中"
// @Param search query string false "标题关键词"
// @Success 200 {object} dto.PromotionListResp "促销列表"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/promotions [get]
func (c *PromotionController) ListPromotions(ctx *gin.Context) {
	filter := repository.PromotionFilter{
		MerchantID: queryInt64(ctx, "merchantId"),
		Type:       model.PromotionType(ctx.Query("type")),
		ActiveOnly: ctx.Query("active") == "1" || ctx.Query("active") == "true",
		Keyword:    ctx.Query("search"),
		Page:       queryInt(ctx, "page"),
		Limit:      queryInt(ctx, "limit"),
	}

	promotions, total, err := c.promotionSvc.ListPromotions(ctx.Request.Context(), filter)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PromotionListResp{
		Promotions: promotions,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	})
}

// GetPromotion 促销详情
// @Summary 促销详情
// @Tags Promotion (促销管理)
// @Produce json
// @Param id path int true "促销ID"
// @Success 200 {object} dto.PromotionDetailResp "促销详情"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/promotions/{id} [get]
func (c *PromotionController) GetPromotion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	promotion, err := c.promotionSvc.GetPromotion(ctx.Request.Context(), id)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PromotionDetailResp{Promotion: *promotion})
}

// CreatePromotion 创建促销
// @Summary 创建促销
// @Tags Promotion (促销管理)
// @Accept json
// @Produce json
// @Param request body dto.PromotionInput true "促销信息"
// @Success 201 {object} dto.PromotionDetailResp "创建成功"
// @Failure 400 {object} dto.ErrorResp "校验失败"
// @Router /api/promotions [post]
func (c *PromotionController) CreatePromotion(ctx *gin.Context) {
	var input dto.PromotionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	promotion, err := c.promotionSvc.CreatePromotion(ctx.Request.Context(), &input)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.PromotionDetailResp{Promotion: *promotion})
}

// CreateBatch 批量创建促销
// @Summary 批量创建促销
// @Description 逐条入库，不保证事务性；每条返回独立结果，部分失败不回滚
// @Tags Promotion (促销管理)
// @Accept json
// @Produce json
// @Param request body dto.PromotionBatchReq true "促销数组"
// @Success 200 {object} dto.PromotionBatchResp "逐条结果"
// @Failure 400 {object} dto.ErrorResp "参数错误"
// @Router /api/promotions/batch [post]
func (c *PromotionController) CreateBatch(ctx *gin.Context) {
	var req dto.PromotionBatchReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp := c.promotionSvc.CreateBatch(ctx.Request.Context(), req.Promotions)
	ctx.JSON(http.StatusOK, resp)
}

// UpdatePromotion 更新促销
// @Summary 更新促销
// @Description 不允许把促销转移到其他商家
// @Tags Promotion (促销管理)
// @Accept json
// @Produce json
// @Param id path int true "促销ID"
// @Param request body dto.PromotionInput true "促销信息"
// @Success 200 {object} dto.PromotionDetailResp "更新成功"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/promotions/{id} [put]
func (c *PromotionController) UpdatePromotion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var input dto.PromotionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	promotion, err := c.promotionSvc.UpdatePromotion(ctx.Request.Context(), id, &input)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PromotionDetailResp{Promotion: *promotion})
}

// DeletePromotion 删除促销
// @Summary 删除促销
// @Tags Promotion (促销管理)
// @Produce json
// @Param id path int true "促销ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/promotions/{id} [delete]
func (c *PromotionController) DeletePromotion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.promotionSvc.DeletePromotion(ctx.Request.Context(), id); err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// BulkAction 批量操作
// @Summary 促销批量操作
// @Description action: activate | deactivate | delete；逐条执行，部分失败不回滚
// @Tags Promotion (促销管理)
// @Accept json
// @Produce json
// @Param request body dto.BulkReq true "批量请求"
// @Success 200 {object} dto.BulkResp "逐条结果"
// @Failure 400 {object} dto.ErrorResp "未知操作"
// @Router /api/promotions/bulk [post]
func (c *PromotionController) BulkAction(ctx *gin.Context) {
	var req dto.BulkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	results, err := c.promotionSvc.BulkAction(ctx.Request.Context(), req.Action, req.IDs)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewBulkResp(results))
}
