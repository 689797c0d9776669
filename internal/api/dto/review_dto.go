package dto

import "reviewhub/internal/model"

// ReviewInput 创建评价请求
type ReviewInput struct {
	MerchantID int64    `json:"merchantId" binding:"required"`
	UserID     int64    `json:"userId" binding:"required"`
	Rating     int      `json:"rating" binding:"required,min=1,max=5"`
	Title      string   `json:"title"`
	Content    string   `json:"content" binding:"required"`
	Images     []string `json:"images"`
}

// CommentInput 创建评论请求
type CommentInput struct {
	UserID   int64  `json:"userId"`
	Content  string `json:"content" binding:"required"`
	Reaction string `json:"reaction"`
}

// ReviewListResp 评价列表响应
type ReviewListResp struct {
	Reviews    []model.Review `json:"reviews"`
	Pagination Pagination     `json:"pagination"`
}

// ReviewDetailResp 单评价响应
type ReviewDetailResp struct {
	Review model.Review `json:"review"`
}

// CommentListResp 评论列表响应
type CommentListResp struct {
	Comments []model.Comment `json:"comments"`
}
