package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// UserService 用户管理业务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户业务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser 创建用户，密码 bcrypt 哈希后入库
func (s *UserService) CreateUser(ctx context.Context, input *dto.UserInput) (*model.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	role := input.Role
	if role == "" {
		role = "user"
	}

	user := &model.User{
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Password:    string(hash),
		Role:        role,
		Status:      model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser 用户详情
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers 用户列表
func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, int64, error) {
	return s.userRepo.List(ctx, filter)
}

// ==================== 封禁 ====================

// Suspend 封禁用户
// until 为 nil 表示永久；封禁类型是一等字段，不塞 reason 文本
func (s *UserService) Suspend(ctx context.Context, id int64, req *dto.SuspendReq) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Status = model.UserStatusSuspended
	user.SuspendedReason = req.Reason
	user.SuspendedUntil = req.Until
	user.SuspensionType = req.Type

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Unsuspend 解封，清空全部封禁字段
func (s *UserService) Unsuspend(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status != model.UserStatusSuspended {
		return nil, fmt.Errorf("用户未处于封禁状态")
	}

	if err := s.userRepo.UpdateFields(ctx, id, map[string]interface{}{
		"status":           model.UserStatusActive,
		"suspended_reason": "",
		"suspended_until":  nil,
		"suspension_type":  "",
	}); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// ReleaseExpiredSuspensions 解封到期用户，返回解封数
// 定时任务调用
func (s *UserService) ReleaseExpiredSuspensions(ctx context.Context, now time.Time, limit int) (int, error) {
	expired, err := s.userRepo.ListExpiredSuspensions(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, user := range expired {
		if _, err := s.Unsuspend(ctx, user.ID); err != nil {
			return released, err
		}
		released++
	}
	return released, nil
}

// ImportLegacySuspension 导入旧数据：封禁类型藏在 reason 文本里
// 解析出一等字段后回写，见 model.ParseLegacySuspension
func (s *UserService) ImportLegacySuspension(ctx context.Context, id int64, legacyReason string, until *time.Time) (*model.User, error) {
	suspType, cleaned := model.ParseLegacySuspension(legacyReason)
	return s.Suspend(ctx, id, &dto.SuspendReq{
		Reason: cleaned,
		Until:  until,
		Type:   suspType,
	})
}

// ==================== 批量操作 ====================

// BulkAction 用户批量操作
func (s *UserService) BulkAction(ctx context.Context, action string, ids []int64) ([]dto.BulkItemResult, error) {
	var fn func(ctx context.Context, id int64) error

	switch action {
	case "activate":
		fn = func(ctx context.Context, id int64) error {
			return s.userRepo.UpdateFields(ctx, id, map[string]interface{}{"status": model.UserStatusActive})
		}
	case "deactivate":
		fn = func(ctx context.Context, id int64) error {
			return s.userRepo.UpdateFields(ctx, id, map[string]interface{}{"status": model.UserStatusInactive})
		}
	case "delete":
		fn = func(ctx context.Context, id int64) error {
			if _, err := s.GetUser(ctx, id); err != nil {
				return err
			}
			return s.userRepo.Delete(ctx, id)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	return runBulk(ctx, ids, fn), nil
}
