package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== ActionRateLimiter 操作限流器 ====================

// ActionRateLimiter 操作限流器
// 防止登录爆破和高开销后台操作（批量建券、AI 判定）被频繁触发
type ActionRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &ActionRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *ActionRateLimiter {
	return globalLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "login:10.0.0.1"
// interval: 冷却间隔
func (r *ActionRateLimiter) Check(key string, interval time.Duration) CheckResult {
	// 获取或创建锁条目
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	// 更新最后执行时间
	entry.lastTime = now
	return CheckResult{
		Allowed:    true,
		RetryAfter: 0,
	}
}

// Reset 重置指定 key 的限流
func (r *ActionRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Key 生成工具 ====================

// ActionType 受限操作类型
type ActionType string

const (
	ActionLogin          ActionType = "login"
	ActionPromotionBatch ActionType = "promotion_batch"
	ActionUpload         ActionType = "upload"
)

// ClientActionKey 生成调用方级限流 Key
func ClientActionKey(client string, action ActionType) string {
	return fmt.Sprintf("%s:%s", action, client)
}

// ==================== 默认限流间隔 ====================

// DefaultIntervals 默认限流间隔配置
var DefaultIntervals = map[ActionType]time.Duration{
	ActionLogin:          time.Second,      // 登录：同 IP 每秒一次
	ActionPromotionBatch: 5 * time.Second,  // 批量建券
	ActionUpload:         2 * time.Second,  // 图片上传
}

// GetInterval 获取操作类型的默认间隔
func GetInterval(action ActionType) time.Duration {
	if interval, ok := DefaultIntervals[action]; ok {
		return interval
	}
	return time.Second
}

// ==================== Gin 中间件 ====================

// ActionRateLimit 操作限流中间件
// 已登录请求按用户维度限流，匿名请求（登录接口）按客户端 IP
//
// 使用示例:
//
//	router.POST("/api/auth/login",
//	    middleware.ActionRateLimit(middleware.ActionLogin, 0),
//	    authCtl.Login,
//	)
//
// 参数:
//   - action: 操作类型
//   - interval: 冷却间隔，0 表示使用默认值
func ActionRateLimit(action ActionType, interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = GetInterval(action)
	}

	return func(c *gin.Context) {
		client := c.ClientIP()
		if userID := GetUserID(c); userID > 0 {
			client = fmt.Sprintf("u%d", userID)
		}
		key := ClientActionKey(client, action)

		result := GetLimiter().Check(key, interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "操作过于频繁，请稍后再试"})
			c.Abort()
			return
		}

		c.Next()
	}
}
