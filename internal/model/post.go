package model

import (
	"time"

	"github.com/lib/pq"
)

// PostStatus 文章状态
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusTrash     PostStatus = "trash"
)

// Valid 是否为合法状态值
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusScheduled, PostStatusTrash:
		return true
	}
	return false
}

// Post 文章/资讯
type Post struct {
	BaseModel
	AuditMixin

	Title   string     `gorm:"size:255;not null" json:"title"`
	Slug    string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt string     `gorm:"size:512" json:"excerpt"`
	Content string     `gorm:"type:text" json:"content"`
	Status  PostStatus `gorm:"size:20;index;default:'draft'" json:"status"`

	CategoryID int64     `gorm:"index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// 标签：输入顺序保留，重复去除
	Tags pq.StringArray `gorm:"type:text[]" json:"tags"`

	FeaturedImage string  `gorm:"size:512" json:"featuredImage"`
	SEO           SEOMeta `gorm:"serializer:json" json:"seo"`

	ScheduledAt *time.Time `gorm:"index" json:"scheduledAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// NormalizeTags 去重但保留首次出现的顺序
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
