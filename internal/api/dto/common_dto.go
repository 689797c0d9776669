package dto

// Pagination 列表分页元信息，所有列表接口统一返回
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination 计算总页数
func NewPagination(page, limit int, total int64) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// ErrorResp 错误响应体
type ErrorResp struct {
	Error string `json:"error"`
	// 表单校验失败时按字段返回
	Fields map[string]string `json:"fields,omitempty"`
}

// ==================== 批量操作 ====================

// BulkReq 批量操作请求
type BulkReq struct {
	Action string  `json:"action" binding:"required"`
	IDs    []int64 `json:"ids" binding:"required,min=1"`
}

// BulkItemResult 单条处理结果
type BulkItemResult struct {
	ID    int64  `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BulkResp 批量操作响应：逐条结果 + 汇总
// 部分失败不回滚，失败项逐条透出
type BulkResp struct {
	Results   []BulkItemResult `json:"results"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
}

// NewBulkResp 由逐条结果汇总
func NewBulkResp(results []BulkItemResult) BulkResp {
	resp := BulkResp{Results: results}
	for _, r := range results {
		if r.OK {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}
