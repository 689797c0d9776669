package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/service"
)

// ==================== 错误映射 ====================

// respondErr 业务错误到 HTTP 状态码的统一映射
// 字段级校验错误返回 {error, fields}，其余返回 {error}
func respondErr(ctx *gin.Context, err error) {
	if fe, ok := service.AsFieldErrors(err); ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResp{Error: "校验失败", Fields: fe})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "资源不存在"})
	case errors.Is(err, service.ErrSlugTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidAction):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrHasChildren):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "该分类下存在子分类，无法删除"})
	case errors.Is(err, service.ErrBadCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱或密码错误"})
	case errors.Is(err, service.ErrUserSuspended):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "账号已被封禁"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ==================== 参数解析 ====================

// pathID 解析路径里的数字 ID，失败时已写响应
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return 0, false
	}
	return id, true
}

// queryInt 查询参数转 int，缺省返回 0
func queryInt(ctx *gin.Context, name string) int {
	v, _ := strconv.Atoi(ctx.Query(name))
	return v
}

// queryInt64 查询参数转 int64，缺省返回 0
func queryInt64(ctx *gin.Context, name string) int64 {
	v, _ := strconv.ParseInt(ctx.Query(name), 10, 64)
	return v
}

// queryDate 查询参数转日期，接受 RFC3339 或 2006-01-02
func queryDate(ctx *gin.Context, name string) *time.Time {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}
