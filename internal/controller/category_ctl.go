package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/service"
)

type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{categorySvc: categorySvc}
}

// ListCategories 分类树
// @Summary 分类树
// @Description 返回完整分类树；flat=1 时返回带缩进深度的扁平列表（下拉框用）
// @Tags Category (分类管理)
// @Produce json
// @Param flat query bool false "扁平化输出"
// @Success 200 {object} dto.CategoryListResp "分类树"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	if ctx.Query("flat") == "1" || ctx.Query("flat") == "true" {
		flat, err := c.categorySvc.ListFlat(ctx.Request.Context())
		if err != nil {
			respondErr(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.CategoryFlatResp{Categories: flat})
		return
	}

	tree, err := c.categorySvc.ListTree(ctx.Request.Context())
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CategoryListResp{Categories: tree})
}

// GetCategory 分类详情
// @Summary 分类详情
// @Tags Category (分类管理)
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} dto.CategoryDetailResp "分类详情"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	category, err := c.categorySvc.GetCategory(ctx.Request.Context(), id)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryDetailResp{Category: *category})
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags Category (分类管理)
// @Accept json
// @Produce json
// @Param request body dto.CategoryInput true "分类信息"
// @Success 201 {object} dto.CategoryDetailResp "创建成功"
// @Failure 400 {object} dto.ErrorResp "校验失败"
// @Router /api/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var input dto.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	category, err := c.categorySvc.CreateCategory(ctx.Request.Context(), &input)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CategoryDetailResp{Category: *category})
}

// UpdateCategory 更新分类
// @Summary 更新分类
// @Description 不允许把分类设为自身的子分类
// @Tags Category (分类管理)
// @Accept json
// @Produce json
// @Param id path int true "分类ID"
// @Param request body dto.CategoryInput true "分类信息"
// @Success 200 {object} dto.CategoryDetailResp "更新成功"
// @Failure 400 {object} dto.ErrorResp "校验失败"
// @Router /api/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var input dto.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	category, err := c.categorySvc.UpdateCategory(ctx.Request.Context(), id, &input)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryDetailResp{Category: *category})
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Description 有子分类时拒绝删除
// @Tags Category (分类管理)
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 400 {object} dto.ErrorResp "存在子分类"
// @Router /api/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.categorySvc.DeleteCategory(ctx.Request.Context(), id); err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
