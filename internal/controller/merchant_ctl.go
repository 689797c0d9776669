package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

type MerchantController struct {
	merchantSvc *service.MerchantService
	storageSvc  *service.StorageService
}

func NewMerchantController(merchantSvc *service.MerchantService, storageSvc *service.StorageService) *MerchantController {
	return &MerchantController{
		merchantSvc: merchantSvc,
		storageSvc:  storageSvc,
	}
}

// ==================== 请求解析 ====================

// bindMerchantInput 解析创建/更新请求
// JSON 和 multipart 两种提交方式：multipart 下嵌套对象是 JSON 字符串字段，
// 文件（logo / screenshots）先落存储，URL 回填到 input
func (c *MerchantController) bindMerchantInput(ctx *gin.Context) (*dto.MerchantInput, error) {
	var input dto.MerchantInput

	contentType := ctx.ContentType()
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if err := ctx.ShouldBindJSON(&input); err != nil {
			return nil, err
		}
		return &input, nil
	}

	if err := ctx.ShouldBind(&input); err != nil {
		return nil, err
	}

	// 嵌套对象：JSON 字符串字段
	if err := parseJSONField(ctx, "seo", &input.SEO); err != nil {
		return nil, err
	}
	if err := parseJSONField(ctx, "utm", &input.UTM); err != nil {
		return nil, err
	}
	if err := parseJSONField(ctx, "faq", &input.FAQ); err != nil {
		return nil, err
	}
	if err := parseJSONField(ctx, "defaultPromotion", &input.DefaultPromotion); err != nil {
		return nil, err
	}
	if err := parseJSONField(ctx, "promotePromotion", &input.PromotePromotion); err != nil {
		return nil, err
	}
	if err := parseJSONField(ctx, "flags", &input.Flags); err != nil {
		return nil, err
	}

	// 文件上传
	form, err := ctx.MultipartForm()
	if err != nil {
		return &input, nil
	}
	if files := form.File["logoFile"]; len(files) > 0 {
		url, err := c.storageSvc.UploadImage(ctx.Request.Context(), files[0])
		if err != nil {
			return nil, err
		}
		input.Logo = url
	}
	if files := form.File["screenshotFiles"]; len(files) > 0 {
		urls, err := c.storageSvc.UploadImages(ctx.Request.Context(), files)
		if err != nil {
			return nil, err
		}
		input.Screenshots = append(input.Screenshots, urls...)
	}
	if files := form.File["seoImageFile"]; len(files) > 0 {
		url, err := c.storageSvc.UploadImage(ctx.Request.Context(), files[0])
		if err != nil {
			return nil, err
		}
		if input.SEO == nil {
			input.SEO = &model.SEOMeta{}
		}
		input.SEO.Image = url
	}

	return &input, nil
}

// parseJSONField 解析 multipart 里的 JSON 字符串字段，缺省跳过
func parseJSONField(ctx *gin.Context, name string, dst interface{}) error {
	raw := ctx.PostForm(name)
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

// ==================== 列表 / 详情 ====================

// ListMerchants 商家列表
// @Summary 商家列表
// @Description 分页查询商家，支持状态、分类、关键词、日期范围筛选
// @Tags Merchant (商家管理)
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param status query string false "状态筛选"
// @Param categoryId query int false "分类筛选"
// @Param search query string false "名称/slug 关键词"
// @Param dateFrom query string false "创建起始日期"
// @Param dateTo query string false "创建截止日期"
// @Success 200 {object} dto.MerchantListResp "商家列表"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/merchants [get]
func (c *MerchantController) ListMerchants(ctx *gin.Context) {
	filter := repository.MerchantFilter{
		Status:     model.MerchantStatus(ctx.Query("status")),
		CategoryID: queryInt64(ctx, "categoryId"),
		Keyword:    ctx.Query("search"),
		DateFrom:   queryDate(ctx, "dateFrom"),
		DateTo:     queryDate(ctx, "dateTo"),
		Page:       queryInt(ctx, "page"),
		Limit:      queryInt(ctx, "limit"),
	}

	merchants, total, err := c.merchantSvc.ListMerchants(ctx.Request.Context(), filter)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	items := make([]dto.MerchantResp, 0, len(merchants))
	for i := range merchants {
		items = append(items, dto.NewMerchantResp(&merchants[i]))
	}

	ctx.JSON(http.StatusOK, dto.MerchantListResp{
		Merchants:  items,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	})
}

// GetMerchant 商家详情
// @Summary 商家详情
// @Tags Merchant (商家管理)
// @Produce json
// @Param id path int true "商家ID"
// @Success 200 {object} dto.MerchantDetailResp "商家详情"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/merchants/{id} [get]
func (c *MerchantController) GetMerchant(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	merchant, err := c.merchantSvc.GetMerchant(ctx.Request.Context(), id)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MerchantDetailResp{Merchant: dto.NewMerchantResp(merchant)})
}

// ==================== 创建 / 更新 ====================

// CreateMerchant 创建商家
// @Summary 创建商家
// @Description action=save_draft 存草稿，action=publish 提交审核；校验失败返回字段级错误且不落库
// @Tags Merchant (商家管理)
// @Accept json
// @Produce json
// @Param action query string false "save_draft | publish" default(save_draft)
// @Param request body dto.MerchantInput true "商家信息"
// @Success 201 {object} dto.MerchantDetailResp "创建成功"
// @Failure 400 {object} dto.ErrorResp "校验失败"
// @Failure 409 {object} dto.ErrorResp "slug 冲突"
// @Router /api/merchants [post]
func (c *MerchantController) CreateMerchant(ctx *gin.Context) {
	input, err := c.bindMerchantInput(ctx)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	merchant, err := c.merchantSvc.CreateMerchant(ctx.Request.Context(), input, ctx.Query("action"))
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MerchantDetailResp{Merchant: dto.NewMerchantResp(merchant)})
}

// UpdateMerchant 更新商家
// @Summary 更新商家
// @Tags Merchant (商家管理)
// @Accept json
// @Produce json
// @Param id path int true "商家ID"
// @Param action query string false "save_draft | publish"
// @Param request body dto.MerchantInput true "商家信息"
// @Success 200 {object} dto.MerchantDetailResp "更新成功"
// @Failure 400 {object} dto.ErrorResp "校验失败"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/merchants/{id} [put]
func (c *MerchantController) UpdateMerchant(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	input, err := c.bindMerchantInput(ctx)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	merchant, err := c.merchantSvc.UpdateMerchant(ctx.Request.Context(), id, input, ctx.Query("action"))
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MerchantDetailResp{Merchant: dto.NewMerchantResp(merchant)})
}

// ==================== 状态 / 删除 / 批量 ====================

// ChangeStatus 状态流转
// @Summary 商家状态流转
// @Description 按状态机校验流转，非法流转返回 400
// @Tags Merchant (商家管理)
// @Accept json
// @Produce json
// @Param id path int true "商家ID"
// @Param request body dto.MerchantStatusReq true "目标状态"
// @Success 200 {object} dto.MerchantDetailResp "流转成功"
// @Failure 400 {object} dto.ErrorResp "非法流转"
// @Router /api/merchants/{id}/status [patch]
func (c *MerchantController) ChangeStatus(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.MerchantStatusReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	merchant, err := c.merchantSvc.ChangeStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MerchantDetailResp{Merchant: dto.NewMerchantResp(merchant)})
}

// DeleteMerchant 删除商家
// @Summary 删除商家
// @Tags Merchant (商家管理)
// @Produce json
// @Param id path int true "商家ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/merchants/{id} [delete]
func (c *MerchantController) DeleteMerchant(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.merchantSvc.DeleteMerchant(ctx.Request.Context(), id); err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// BulkAction 批量操作
// @Summary 商家批量操作
// @Description action: publish | suspend | delete；逐条执行，部分失败不回滚
// @Tags Merchant (商家管理)
// @Accept json
// @Produce json
// @Param request body dto.BulkReq true "批量请求"
// @Success 200 {object} dto.BulkResp "逐条结果"
// @Failure 400 {object} dto.ErrorResp "未知操作"
// @Router /api/merchants/bulk [post]
func (c *MerchantController) BulkAction(ctx *gin.Context) {
	var req dto.BulkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	results, err := c.merchantSvc.BulkAction(ctx.Request.Context(), req.Action, req.IDs)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewBulkResp(results))
}
