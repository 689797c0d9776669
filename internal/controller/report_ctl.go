package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/middleware"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

type ReportController struct {
	reportSvc *service.ReportService
}

func NewReportController(reportSvc *service.ReportService) *ReportController {
	return &ReportController{reportSvc: reportSvc}
}

// groupKey 解析路径里的 (contentType, contentId) 组键
func groupKey(ctx *gin.Context) (model.ReportContentType, int64, bool) {
	contentType := model.ReportContentType(ctx.Param("contentType"))
	if contentType != model.ReportContentReview && contentType != model.ReportContentComment {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的内容类型"})
		return "", 0, false
	}
	id, ok := pathID(ctx, "contentId")
	if !ok {
		return "", 0, false
	}
	return contentType, id, true
}

// SubmitReport 提交举报
// @Summary 提交举报
// @Tags Report (举报处理)
// @Accept json
// @Produce json
// @Param request body dto.ReportInput true "举报内容"
// @Success 201 {object} model.Report "提交成功"
// @Failure 400 {object} dto.ErrorResp "参数错误"
// @Router /api/reports [post]
func (c *ReportController) SubmitReport(ctx *gin.Context) {
	var input dto.ReportInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	report, err := c.reportSvc.SubmitReport(ctx.Request.Context(), &input)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, report)
}

// ListGroups 举报组列表
// @Summary 举报组列表
// @Description 按被举报内容 (contentType, contentId) 聚合，一组一行
// @Tags Report (举报处理)
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param status query string false "状态筛选: pending | accepted | rejected"
// @Param contentType query string false "内容类型: review | comment"
// @Success 200 {object} dto.ReportGroupListResp "举报组列表"
// @Failure 500 {object} dto.ErrorResp "服务器错误"
// @Router /api/reports [get]
func (c *ReportController) ListGroups(ctx *gin.Context) {
	filter := repository.ReportFilter{
		Status:      model.ReportStatus(ctx.Query("status")),
		ContentType: model.ReportContentType(ctx.Query("contentType")),
		Page:        queryInt(ctx, "page"),
		Limit:       queryInt(ctx, "limit"),
	}

	groups, total, err := c.reportSvc.ListGroups(ctx.Request.Context(), filter)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReportGroupListResp{
		Reports:    groups,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	})
}

// GetGroup 举报组详情
// @Summary 举报组详情
// @Tags Report (举报处理)
// @Produce json
// @Param contentType path string true "内容类型: review | comment"
// @Param contentId path int true "内容ID"
// @Success 200 {object} dto.ReportGroupResp "举报组详情"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/reports/{contentType}/{contentId} [get]
func (c *ReportController) GetGroup(ctx *gin.Context) {
	contentType, contentID, ok := groupKey(ctx)
	if !ok {
		return
	}

	group, err := c.reportSvc.GetGroup(ctx.Request.Context(), contentType, contentID)
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReportGroupResp{Report: *group})
}

// Accept 采纳举报
// @Summary 采纳举报
// @Description 评价标记为 spam（评论直接删除），组内全部待处理举报置为 accepted
// @Tags Report (举报处理)
// @Produce json
// @Param contentType path string true "内容类型: review | comment"
// @Param contentId path int true "内容ID"
// @Success 200 {object} dto.ReportResolveResp "处理结果"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/reports/{contentType}/{contentId}/accept [post]
func (c *ReportController) Accept(ctx *gin.Context) {
	contentType, contentID, ok := groupKey(ctx)
	if !ok {
		return
	}

	resolved, err := c.reportSvc.Accept(ctx.Request.Context(), contentType, contentID, middleware.GetUserID(ctx))
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReportResolveResp{Resolved: resolved})
}

// Reject 驳回举报
// @Summary 驳回举报
// @Description 内容保留，组内全部待处理举报置为 rejected
// @Tags Report (举报处理)
// @Produce json
// @Param contentType path string true "内容类型: review | comment"
// @Param contentId path int true "内容ID"
// @Success 200 {object} dto.ReportResolveResp "处理结果"
// @Failure 404 {object} dto.ErrorResp "不存在"
// @Router /api/reports/{contentType}/{contentId}/reject [post]
func (c *ReportController) Reject(ctx *gin.Context) {
	contentType, contentID, ok := groupKey(ctx)
	if !ok {
		return
	}

	resolved, err := c.reportSvc.Reject(ctx.Request.Context(), contentType, contentID, middleware.GetUserID(ctx))
	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReportResolveResp{Resolved: resolved})
}
