package model

import (
	"github.com/lib/pq"
)

// ==================== 商家状态机 ====================

// MerchantStatus 商家状态
// 审核流：draft -> pending -> approved/rejected
// 评级态：approved 之后可落到 recommended/trusted/neutral/controversial/avoid
type MerchantStatus string

const (
	MerchantStatusDraft         MerchantStatus = "draft"
	MerchantStatusPending       MerchantStatus = "pending"
	MerchantStatusApproved      MerchantStatus = "approved"
	MerchantStatusRejected      MerchantStatus = "rejected"
	MerchantStatusSuspended     MerchantStatus = "suspended"
	MerchantStatusRecommended   MerchantStatus = "recommended"
	MerchantStatusTrusted       MerchantStatus = "trusted"
	MerchantStatusNeutral       MerchantStatus = "neutral"
	MerchantStatusControversial MerchantStatus = "controversial"
	MerchantStatusAvoid         MerchantStatus = "avoid"
)

// ratingStatuses 评级态集合，评级之间可以互相切换
var ratingStatuses = []MerchantStatus{
	MerchantStatusRecommended,
	MerchantStatusTrusted,
	MerchantStatusNeutral,
	MerchantStatusControversial,
	MerchantStatusAvoid,
}

// merchantTransitions 状态转移表
// 不在表内的转移一律拒绝
var merchantTransitions = map[MerchantStatus][]MerchantStatus{
	MerchantStatusDraft:    {MerchantStatusPending},
	MerchantStatusPending:  {MerchantStatusApproved, MerchantStatusRejected},
	MerchantStatusRejected: {MerchantStatusPending},
	MerchantStatusApproved: append([]MerchantStatus{MerchantStatusSuspended}, ratingStatuses...),
	MerchantStatusSuspended: {
		MerchantStatusApproved,
	},
	MerchantStatusRecommended:   ratingPeers(MerchantStatusRecommended),
	MerchantStatusTrusted:       ratingPeers(MerchantStatusTrusted),
	MerchantStatusNeutral:       ratingPeers(MerchantStatusNeutral),
	MerchantStatusControversial: ratingPeers(MerchantStatusControversial),
	MerchantStatusAvoid:         ratingPeers(MerchantStatusAvoid),
}

// ratingPeers 某评级态可达的状态：其余评级 + suspended
func ratingPeers(self MerchantStatus) []MerchantStatus {
	out := []MerchantStatus{MerchantStatusSuspended}
	for _, s := range ratingStatuses {
		if s != self {
			out = append(out, s)
		}
	}
	return out
}

// Valid 是否为合法状态值
func (s MerchantStatus) Valid() bool {
	_, ok := merchantTransitions[s]
	return ok
}

// CanTransition 是否允许转移到目标状态
func (s MerchantStatus) CanTransition(to MerchantStatus) bool {
	if s == to {
		return true
	}
	for _, next := range merchantTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// MerchantRoute 列表行应跳转的页面类型
type MerchantRoute string

const (
	RouteEdit   MerchantRoute = "edit"
	RouteDetail MerchantRoute = "detail"
)

// Route 状态驱动的跳转规则：draft/pending 进编辑页，其余进详情页
func (s MerchantStatus) Route() MerchantRoute {
	if s == MerchantStatusDraft || s == MerchantStatusPending {
		return RouteEdit
	}
	return RouteDetail
}

// ==================== 嵌套配置对象 ====================

// SEOMeta SEO 配置
type SEOMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
	Image       string `json:"image"`
	Canonical   string `json:"canonical"`
}

// UTMConfig 出站链接的 UTM 参数
type UTMConfig struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
	Term     string `json:"term"`
	Content  string `json:"content"`
}

// FAQEntry 商家页 FAQ 条目
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PromotionHighlight 商家页置顶展示的促销摘要
type PromotionHighlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Link        string `json:"link"`
}

// AdminFlags 管理开关
type AdminFlags struct {
	AllowReviews  bool `json:"allowReviews"`
	AllowComments bool `json:"allowComments"`
	DoFollow      bool `json:"doFollow"`
}

// ==================== 商家 ====================

type Merchant struct {
	BaseModel
	AuditMixin

	// 身份
	Slug string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name string `gorm:"size:255;not null" json:"name"`

	// 分类与状态
	CategoryID int64          `gorm:"index" json:"categoryId"`
	Category   *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Status     MerchantStatus `gorm:"size:20;index;default:'draft'" json:"status"`

	// 联系信息
	Description string `gorm:"type:text" json:"description"`
	Email       string `gorm:"size:255" json:"email"`
	Phone       string `gorm:"size:50" json:"phone"`
	Website     string `gorm:"size:512" json:"website"`
	Address     string `gorm:"size:512" json:"address"`

	// 媒体
	Logo        string         `gorm:"size:512" json:"logo"`
	Screenshots pq.StringArray `gorm:"type:text[]" json:"screenshots"`

	// 嵌套配置
	SEO              SEOMeta            `gorm:"serializer:json" json:"seo"`
	UTM              UTMConfig          `gorm:"serializer:json" json:"utm"`
	FAQ              []FAQEntry         `gorm:"serializer:json" json:"faq"`
	DefaultPromotion PromotionHighlight `gorm:"serializer:json" json:"defaultPromotion"`
	PromotePromotion PromotionHighlight `gorm:"serializer:json" json:"promotePromotion"`
	Flags            AdminFlags         `gorm:"serializer:json" json:"flags"`

	// 统计（冗余，后台列表展示用）
	ReviewCount   int     `gorm:"default:0" json:"reviewCount"`
	AverageRating float64 `gorm:"default:0" json:"averageRating"`

	// 关联
	Promotions []Promotion `gorm:"foreignKey:MerchantID" json:"promotions,omitempty"`
}

func (Merchant) TableName() string {
	return "merchants"
}
