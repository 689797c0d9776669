package dto

import (
	"time"

	"reviewhub/internal/model"
)

// PostInput 创建/更新文章请求
type PostInput struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CategoryID int64    `json:"categoryId"`
	Tags       []string `json:"tags"`

	FeaturedImage string         `json:"featuredImage"`
	SEO           *model.SEOMeta `json:"seo"`

	// scheduled 状态必填
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// PostListResp 文章列表响应
type PostListResp struct {
	Posts      []model.Post `json:"posts"`
	Pagination Pagination   `json:"pagination"`
}

// PostDetailResp 单文章响应
type PostDetailResp struct {
	Post model.Post `json:"post"`
}

// ==================== 分类 ====================

// CategoryInput 创建/更新分类请求
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parentId"`
	SortOrder   int    `json:"sortOrder"`
}

// CategoryListResp 分类列表响应（树）
type CategoryListResp struct {
	Categories []model.Category `json:"categories"`
}

// CategoryFlatResp 下拉框用的扁平化响应
type CategoryFlatResp struct {
	Categories []model.FlatCategory `json:"categories"`
}

// CategoryDetailResp 单分类响应
type CategoryDetailResp struct {
	Category model.Category `json:"category"`
}
