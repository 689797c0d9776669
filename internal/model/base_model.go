package model

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AuditMixin 审计字段 (只记录，不参与 WHERE 查询权限)
type AuditMixin struct {
	CreatedBy int64 `gorm:"index" json:"createdBy"` // 创建人的 User ID
	UpdatedBy int64 `gorm:"index" json:"updatedBy"` // 最后修改人的 User ID
}
