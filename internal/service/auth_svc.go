package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/middleware"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/pkg/logger"
)

// AuthService 后台登录认证
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService 创建认证业务
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Login 邮箱密码登录，签发 Token 对
func (s *AuthService) Login(ctx context.Context, req *dto.LoginReq) (*dto.TokenResp, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// 不区分"用户不存在"和"密码错误"
		return nil, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	if user.Status == model.UserStatusSuspended {
		// 到期封禁由定时任务解除，这里只做兜底放行
		if !user.SuspensionExpired(time.Now()) {
			return nil, ErrUserSuspended
		}
	}
	if user.Status == model.UserStatusInactive {
		return nil, ErrBadCredentials
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.DisplayName, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
		logger.L().Warn("update last login failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	return &dto.TokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *user,
	}, nil
}

// Refresh 用 Refresh Token 换新 Token 对
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshReq) (*dto.TokenResp, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if claims.Subject != "refresh" {
		return nil, ErrBadCredentials
	}

	// 重新查库：封禁或注销的用户不能续期
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if user.Status == model.UserStatusSuspended && !user.SuspensionExpired(time.Now()) {
		return nil, ErrUserSuspended
	}
	if user.Status == model.UserStatusInactive {
		return nil, ErrBadCredentials
	}

	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.DisplayName, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *user,
	}, nil
}

// CurrentUser 按 Token 里的用户 ID 取当前用户
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}
