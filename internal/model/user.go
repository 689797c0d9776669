package model

import (
	"strings"
	"time"
)

// UserStatus 用户状态
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// Valid 是否为合法状态值
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

// SuspensionType 封禁类型，一等字段
// 历史数据里封禁类型藏在 reason 文本里（"(email)" 后缀），迁移时用
// ParseLegacySuspension 提取，新数据一律写这个字段
type SuspensionType string

const (
	SuspensionTypeAccount SuspensionType = "account"
	SuspensionTypeEmail   SuspensionType = "email"
)

// User 站点用户（含后台管理员，按 Role 区分）
type User struct {
	BaseModel

	Email       string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DisplayName string `gorm:"size:100" json:"displayName"`
	Password    string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希

	// super_admin (超管), editor (编辑), user (普通用户)
	Role string `gorm:"size:20;default:'user'" json:"role"`

	Status UserStatus `gorm:"size:20;index;default:'active'" json:"status"`

	// 封禁信息，Status != suspended 时均为空
	SuspendedReason string         `gorm:"size:512" json:"suspendedReason,omitempty"`
	SuspendedUntil  *time.Time     `json:"suspendedUntil,omitempty"` // nil 表示永久
	SuspensionType  SuspensionType `gorm:"size:20" json:"suspensionType,omitempty"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// SuspensionExpired 封禁是否已到期（永久封禁永不到期）
func (u *User) SuspensionExpired(now time.Time) bool {
	if u.Status != UserStatusSuspended {
		return false
	}
	return u.SuspendedUntil != nil && now.After(*u.SuspendedUntil)
}

// ParseLegacySuspension 从历史 reason 文本里提取封禁类型
// 旧约定：reason 含 "(email)" 子串表示邮箱封禁，其余是账号封禁
// 仅用于导入旧数据，见 DESIGN.md
func ParseLegacySuspension(reason string) (SuspensionType, string) {
	if strings.Contains(reason, "(email)") {
		cleaned := strings.TrimSpace(strings.ReplaceAll(reason, "(email)", ""))
		return SuspensionTypeEmail, cleaned
	}
	return SuspensionTypeAccount, strings.TrimSpace(reason)
}
