package middleware

import (
	"context"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== 操作人上下文 ====================

type operatorKey struct{}

// Operator 当前操作的后台管理员，随 request context 传递
type Operator struct {
	UserID      int64
	DisplayName string
}

// WithOperator 注入操作人到 context
func WithOperator(ctx context.Context, userID int64, displayName string) context.Context {
	return context.WithValue(ctx, operatorKey{}, &Operator{
		UserID:      userID,
		DisplayName: displayName,
	})
}

// OperatorFrom 从 context 取操作人，未登录返回 nil
func OperatorFrom(ctx context.Context) *Operator {
	if op, ok := ctx.Value(operatorKey{}).(*Operator); ok {
		return op
	}
	return nil
}

// OperatorID 从 context 取操作人 ID，未登录返回 0
func OperatorID(ctx context.Context) int64 {
	if op := OperatorFrom(ctx); op != nil {
		return op.UserID
	}
	return 0
}

// ==================== Gin 中间件 ====================

// AuditContext 把 JWT 里的管理员身份搬进 request context
// 商家 / 文章 / 促销的写操作经由 GORM 回调记录操作人
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)

		if userID > 0 {
			ctx := WithOperator(c.Request.Context(), userID, GetUsername(c))
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// ==================== GORM 回调 ====================

// RegisterAuditCallbacks 注册操作人落库回调
// 带 AuditMixin 的模型在 Create 时盖上 CreatedBy/UpdatedBy，Update 时刷新 UpdatedBy；
// 定时任务等无操作人的写入不受影响
func RegisterAuditCallbacks(db *gorm.DB) {
	db.Callback().Create().Before("gorm:create").Register("reviewhub:stamp_creator", func(tx *gorm.DB) {
		if tx.Statement.Context == nil {
			return
		}
		operatorID := OperatorID(tx.Statement.Context)
		if operatorID == 0 {
			return
		}
		stampOperator(tx, operatorID, "CreatedBy", "UpdatedBy")
	})

	db.Callback().Update().Before("gorm:update").Register("reviewhub:stamp_updater", func(tx *gorm.DB) {
		if tx.Statement.Context == nil {
			return
		}
		operatorID := OperatorID(tx.Statement.Context)
		if operatorID == 0 {
			return
		}
		stampOperator(tx, operatorID, "UpdatedBy")
	})
}

// stampOperator 给目标模型的审计字段盖操作人，字段不存在或已显式赋值则跳过
func stampOperator(tx *gorm.DB, operatorID int64, fieldNames ...string) {
	if tx.Statement.Schema == nil {
		return
	}

	for _, name := range fieldNames {
		field := tx.Statement.Schema.LookUpField(name)
		if field == nil {
			continue
		}

		switch tx.Statement.ReflectValue.Kind() {
		case reflect.Struct:
			if _, isZero := field.ValueOf(tx.Statement.Context, tx.Statement.ReflectValue); isZero {
				_ = field.Set(tx.Statement.Context, tx.Statement.ReflectValue, operatorID)
			}
		case reflect.Slice:
			// 批量创建逐条盖
			for i := 0; i < tx.Statement.ReflectValue.Len(); i++ {
				rv := tx.Statement.ReflectValue.Index(i)
				if _, isZero := field.ValueOf(tx.Statement.Context, rv); isZero {
					_ = field.Set(tx.Statement.Context, rv, operatorID)
				}
			}
		}
	}
}
