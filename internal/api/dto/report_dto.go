package dto

import "reviewhub/internal/model"

// ReportInput 提交举报请求（前台）
type ReportInput struct {
	ContentType model.ReportContentType `json:"contentType" binding:"required,oneof=review comment"`
	ContentID   int64                   `json:"contentId" binding:"required"`
	ReporterID  int64                   `json:"reporterId"`
	Reason      string                  `json:"reason" binding:"required"`
	Details     map[string]interface{}  `json:"details,omitempty"`
}

// ReportGroupListResp 举报组列表响应
type ReportGroupListResp struct {
	Reports    []model.ReportGroup `json:"reports"`
	Pagination Pagination          `json:"pagination"`
}

// ReportGroupResp 单举报组响应
type ReportGroupResp struct {
	Report model.ReportGroup `json:"report"`
}

// ReportResolveResp 处理结果
type ReportResolveResp struct {
	Resolved int64 `json:"resolved"` // 本次置为终态的举报条数
}
