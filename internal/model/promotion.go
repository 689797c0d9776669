package model

import "time"

// PromotionType 促销类型
type PromotionType string

const (
	PromotionTypeDefault PromotionType = "default" // 商家默认促销
	PromotionTypeCommon  PromotionType = "common"  // 公开促销
	PromotionTypePrivate PromotionType = "private" // 需登录/评论解锁
)

// Valid 是否为合法类型
func (t PromotionType) Valid() bool {
	switch t {
	case PromotionTypeDefault, PromotionTypeCommon, PromotionTypePrivate:
		return true
	}
	return false
}

// Promotion 促销，归属唯一商家
type Promotion struct {
	BaseModel
	AuditMixin

	MerchantID int64     `gorm:"index;not null" json:"merchantId"`
	Merchant   *Merchant `gorm:"foreignKey:MerchantID" json:"-"`

	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Type        PromotionType `gorm:"size:20;index;default:'common'" json:"type"`

	// 有效期，两端都含当天；不强制 StartDate <= EndDate
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	// 礼品码：自由文本，约定逗号分隔，这里不做解析
	GiftCodes string `gorm:"type:text" json:"giftCodes"`

	LoginRequired  bool `gorm:"default:false" json:"loginRequired"`
	ReviewRequired bool `gorm:"default:false" json:"reviewRequired"`
	IsActive       bool `gorm:"default:true" json:"isActive"`
}

func (Promotion) TableName() string {
	return "promotions"
}

// ActiveOn 在指定时刻是否处于有效期内
// EndDate 含当天：当天 23:59:59 之前都算有效
func (p *Promotion) ActiveOn(t time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartDate != nil && t.Before(startOfDay(*p.StartDate)) {
		return false
	}
	if p.EndDate != nil && !t.Before(startOfDay(*p.EndDate).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
