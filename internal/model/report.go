package model

import (
	"time"

	"gorm.io/datatypes"
)

// ReportStatus 举报处理状态
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusAccepted ReportStatus = "accepted" // 采纳：目标内容标记为 spam
	ReportStatusRejected ReportStatus = "rejected" // 驳回：内容保留
)

// ReportContentType 被举报内容类型
type ReportContentType string

const (
	ReportContentReview  ReportContentType = "review"
	ReportContentComment ReportContentType = "comment"
)

// Report 原始举报，本身不可编辑，只能被批量处理
type Report struct {
	BaseModel

	ContentType ReportContentType `gorm:"size:20;index:idx_report_content;not null" json:"contentType"`
	ContentID   int64             `gorm:"index:idx_report_content;not null" json:"contentId"`

	ReporterID int64  `gorm:"index" json:"reporterId"`
	Reporter   *User  `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Reason     string `gorm:"size:100;not null" json:"reason"`

	// 举报人附带的自由结构载荷（截图链接、上下文等）
	Details datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`

	Status      ReportStatus `gorm:"size:20;index;default:'pending'" json:"status"`
	ResolvedBy  int64        `gorm:"default:0" json:"resolvedBy,omitempty"`
	ResolvedAt  *time.Time   `json:"resolvedAt,omitempty"`
	SpamScore   float64      `gorm:"default:0" json:"spamScore"` // AI 预打分，0 表示未打分
}

func (Report) TableName() string {
	return "reports"
}

// ReportGroup 按 ContentID 聚合后的视图，列表页展示用
type ReportGroup struct {
	ContentType ReportContentType `json:"contentType"`
	ContentID   int64             `json:"contentId"`
	ReportCount int64             `json:"reportCount"`
	FirstSeen   time.Time         `json:"firstSeen"`
	LastSeen    time.Time         `json:"lastSeen"`
	Reasons     []string          `json:"reasons"`
	SpamScore   float64           `json:"spamScore"`
	Reports     []Report          `json:"reports,omitempty"`
}
