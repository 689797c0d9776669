package dto

import (
	"time"

	"reviewhub/internal/model"
)

// PromotionInput 单条促销输入
type PromotionInput struct {
	MerchantID  int64               `json:"merchantId"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Type        model.PromotionType `json:"type"`

	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	GiftCodes      string `json:"giftCodes"`
	LoginRequired  bool   `json:"loginRequired"`
	ReviewRequired bool   `json:"reviewRequired"`
	IsActive       *bool  `json:"isActive,omitempty"`
}

// PromotionBatchReq 批量创建：一次请求多条，逐条入库，不保证事务性
type PromotionBatchReq struct {
	Promotions []PromotionInput `json:"promotions" binding:"required,min=1"`
}

// PromotionBatchItem 批量创建的单条结果
type PromotionBatchItem struct {
	Index int    `json:"index"`
	OK    bool   `json:"ok"`
	ID    int64  `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// PromotionBatchResp 批量创建响应
type PromotionBatchResp struct {
	Results   []PromotionBatchItem `json:"results"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
}

// PromotionListResp 促销列表响应
type PromotionListResp struct {
	Promotions []model.Promotion `json:"promotions"`
	Pagination Pagination        `json:"pagination"`
}

// PromotionDetailResp 单促销响应
type PromotionDetailResp struct {
	Promotion model.Promotion `json:"promotion"`
}
