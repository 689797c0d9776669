package dto

import (
	"time"

	"reviewhub/internal/model"
)

// UserInput 创建用户请求
type UserInput struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role"`
}

// SuspendReq 封禁请求
// Until 为空表示永久封禁；Type 为一等字段，不再塞进 reason 文本
type SuspendReq struct {
	Reason string               `json:"reason" binding:"required"`
	Until  *time.Time           `json:"until,omitempty"`
	Type   model.SuspensionType `json:"type" binding:"required,oneof=account email"`
}

// UserListResp 用户列表响应
type UserListResp struct {
	Users      []model.User `json:"users"`
	Pagination Pagination   `json:"pagination"`
}

// UserDetailResp 单用户响应
type UserDetailResp struct {
	User model.User `json:"user"`
}

// ==================== 认证 ====================

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshReq 刷新 Token 请求
type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResp 登录/刷新响应
type TokenResp struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         model.User `json:"user"`
}
