package model

import "github.com/lib/pq"

// ReviewStatus 评价状态
type ReviewStatus string

const (
	ReviewStatusActive ReviewStatus = "active"
	ReviewStatusHidden ReviewStatus = "hidden"
	ReviewStatusSpam   ReviewStatus = "spam"
)

// Review 商家评价
type Review struct {
	BaseModel

	MerchantID int64     `gorm:"index;not null" json:"merchantId"`
	Merchant   *Merchant `gorm:"foreignKey:MerchantID" json:"-"`
	UserID     int64     `gorm:"index;not null" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Rating  int          `gorm:"not null" json:"rating"` // 1-5
	Title   string       `gorm:"size:255" json:"title"`
	Content string       `gorm:"type:text" json:"content"`
	Status  ReviewStatus `gorm:"size:20;index;default:'active'" json:"status"`

	Images pq.StringArray `gorm:"type:text[]" json:"images"`

	// 删除评价时级联删除评论
	Comments []Comment `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// ==================== 评论与表情 ====================

// AllowedReactions 评论可用的表情，固定集合
var AllowedReactions = []string{"❤️", "😢", "😡"}

// ValidReaction 是否为合法表情
func ValidReaction(r string) bool {
	for _, allowed := range AllowedReactions {
		if r == allowed {
			return true
		}
	}
	return false
}

// Comment 评价下的评论，带一个表情标记
type Comment struct {
	BaseModel

	ReviewID int64  `gorm:"index;not null" json:"reviewId"`
	UserID   int64  `gorm:"index" json:"userId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Reaction string `gorm:"size:16" json:"reaction"`
}

func (Comment) TableName() string {
	return "comments"
}
