package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ==================== 错误定义 ====================

var (
	ErrNotFound          = errors.New("record not found")
	ErrSlugTaken         = errors.New("slug already taken")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInvalidAction     = errors.New("unknown bulk action")
	ErrHasChildren       = errors.New("category has children")
	ErrEmailTaken        = errors.New("email already registered")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrUserSuspended     = errors.New("user is suspended")
)

// ==================== 字段级校验错误 ====================

// FieldErrors 按字段名聚合的校验错误
// 校验失败时请求不落库，错误整体返回给表单逐字段展示
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Any 是否存在校验错误
func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// AsFieldErrors 从 error 中提取 FieldErrors
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
