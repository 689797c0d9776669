package dto

import "reviewhub/internal/model"

// ==================== 请求 DTO ====================

// MerchantInput 创建/更新商家请求
// multipart 提交时嵌套对象作为 JSON 字符串字段传入，由 controller 解析后填充
type MerchantInput struct {
	Name        string `json:"name" form:"name"`
	Slug        string `json:"slug" form:"slug"`
	Description string `json:"description" form:"description"`
	CategoryID  int64  `json:"categoryId" form:"categoryId"`

	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Website string `json:"website" form:"website"`
	Address string `json:"address" form:"address"`

	// 媒体：URL 直传；文件上传走 multipart，controller 先落存储再填这两个字段
	Logo        string   `json:"logo" form:"logo"`
	Screenshots []string `json:"screenshots" form:"screenshots"`

	SEO              *model.SEOMeta            `json:"seo" form:"-"`
	UTM              *model.UTMConfig          `json:"utm" form:"-"`
	FAQ              []model.FAQEntry          `json:"faq" form:"-"`
	DefaultPromotion *model.PromotionHighlight `json:"defaultPromotion" form:"-"`
	PromotePromotion *model.PromotionHighlight `json:"promotePromotion" form:"-"`
	Flags            *model.AdminFlags         `json:"flags" form:"-"`
}

// MerchantStatusReq 状态流转请求
type MerchantStatusReq struct {
	Status model.MerchantStatus `json:"status" binding:"required"`
}

// ==================== 响应 DTO ====================

// MerchantResp 商家响应
type MerchantResp struct {
	model.Merchant
	// 列表行跳转类型，由状态推导：draft/pending -> edit，其余 -> detail
	Route model.MerchantRoute `json:"route"`
}

// NewMerchantResp 由模型构造响应
func NewMerchantResp(m *model.Merchant) MerchantResp {
	return MerchantResp{
		Merchant: *m,
		Route:    m.Status.Route(),
	}
}

// MerchantListResp 商家列表响应
type MerchantListResp struct {
	Merchants  []MerchantResp `json:"merchants"`
	Pagination Pagination     `json:"pagination"`
}

// MerchantDetailResp 单商家响应
type MerchantDetailResp struct {
	Merchant MerchantResp `json:"merchant"`
}
