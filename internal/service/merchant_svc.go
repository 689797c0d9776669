package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/pkg/logger"
)

// MerchantService 商家业务
type MerchantService struct {
	merchantRepo repository.MerchantRepository
	categoryRepo repository.CategoryRepository
}

// NewMerchantService 创建商家业务
func NewMerchantService(merchantRepo repository.MerchantRepository, categoryRepo repository.CategoryRepository) *MerchantService {
	return &MerchantService{
		merchantRepo: merchantRepo,
		categoryRepo: categoryRepo,
	}
}

// ==================== 校验 ====================

// ValidateInput 商家表单校验
// 与后台表单的前置校验规则一致：必填项、邮箱含 @、网址 http 前缀、slug 格式
func (s *MerchantService) ValidateInput(input *dto.MerchantInput) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = "名称必填"
	}
	if strings.TrimSpace(input.Slug) == "" {
		errs["slug"] = "slug 必填"
	} else if !slug.IsSlug(input.Slug) {
		errs["slug"] = "slug 格式非法"
	}
	if strings.TrimSpace(input.Description) == "" {
		errs["description"] = "描述必填"
	}
	if input.CategoryID <= 0 {
		errs["category"] = "分类必选"
	}
	if input.Email != "" && !strings.Contains(input.Email, "@") {
		errs["email"] = "邮箱格式非法"
	}
	if input.Website != "" && !strings.HasPrefix(input.Website, "http") {
		errs["website"] = "网址必须以 http 开头"
	}

	return errs
}

// GenerateSlug 由名称派生 slug
func (s *MerchantService) GenerateSlug(name string) string {
	return slug.Make(name)
}

// ==================== CRUD ====================

// statusForAction save_draft / publish 两个具名动作映射到状态值
func statusForAction(action string) (model.MerchantStatus, error) {
	switch action {
	case "save_draft", "":
		return model.MerchantStatusDraft, nil
	case "publish":
		return model.MerchantStatusPending, nil
	default:
		return "", fmt.Errorf("未知提交动作: %s", action)
	}
}

// CreateMerchant 创建商家
// action: save_draft 存为草稿，publish 提交审核
func (s *MerchantService) CreateMerchant(ctx context.Context, input *dto.MerchantInput, action string) (*model.Merchant, error) {
	if input.Slug == "" && input.Name != "" {
		input.Slug = s.GenerateSlug(input.Name)
	}
	if errs := s.ValidateInput(input); errs.Any() {
		return nil, errs
	}

	status, err := statusForAction(action)
	if err != nil {
		return nil, err
	}

	taken, err := s.merchantRepo.SlugExists(ctx, input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, FieldErrors{"slug": "slug 已被占用"}
	}

	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FieldErrors{"category": "分类不存在"}
		}
		return nil, err
	}

	merchant := &model.Merchant{
		Slug:        input.Slug,
		Name:        input.Name,
		CategoryID:  input.CategoryID,
		Status:      status,
		Description: input.Description,
		Email:       input.Email,
		Phone:       input.Phone,
		Website:     input.Website,
		Address:     input.Address,
		Logo:        input.Logo,
		Screenshots: input.Screenshots,
	}
	applyMerchantNested(merchant, input)

	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, err
	}

	logger.L().Info("merchant created",
		zap.Int64("merchant_id", merchant.ID),
		zap.String("slug", merchant.Slug),
		zap.String("status", string(merchant.Status)))

	return merchant, nil
}

// UpdateMerchant 更新商家
// 仅覆盖入参携带的字段；action 为空时维持原状态
func (s *MerchantService) UpdateMerchant(ctx context.Context, id int64, input *dto.MerchantInput, action string) (*model.Merchant, error) {
	merchant, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Slug == "" && input.Name != "" {
		input.Slug = merchant.Slug
	}
	if errs := s.ValidateInput(input); errs.Any() {
		return nil, errs
	}

	if input.Slug != merchant.Slug {
		taken, err := s.merchantRepo.SlugExists(ctx, input.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, FieldErrors{"slug": "slug 已被占用"}
		}
	}

	if action != "" {
		status, err := statusForAction(action)
		if err != nil {
			return nil, err
		}
		// 已过审的商家重新保存不回退状态，只有草稿/驳回态能走 save_draft / publish
		if status != merchant.Status {
			if !merchant.Status.CanTransition(status) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, merchant.Status, status)
			}
			merchant.Status = status
		}
	}

	merchant.Slug = input.Slug
	merchant.Name = input.Name
	merchant.CategoryID = input.CategoryID
	merchant.Description = input.Description
	merchant.Email = input.Email
	merchant.Phone = input.Phone
	merchant.Website = input.Website
	merchant.Address = input.Address
	if input.Logo != "" {
		merchant.Logo = input.Logo
	}
	if input.Screenshots != nil {
		merchant.Screenshots = input.Screenshots
	}
	applyMerchantNested(merchant, input)

	if err := s.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}
	return merchant, nil
}

// applyMerchantNested 覆盖嵌套配置，入参为 nil 的不动
func applyMerchantNested(merchant *model.Merchant, input *dto.MerchantInput) {
	if input.SEO != nil {
		merchant.SEO = *input.SEO
	}
	if input.UTM != nil {
		merchant.UTM = *input.UTM
	}
	if input.FAQ != nil {
		merchant.FAQ = input.FAQ
	}
	if input.DefaultPromotion != nil {
		merchant.DefaultPromotion = *input.DefaultPromotion
	}
	if input.PromotePromotion != nil {
		merchant.PromotePromotion = *input.PromotePromotion
	}
	if input.Flags != nil {
		merchant.Flags = *input.Flags
	}
}

// GetMerchant 商家详情
func (s *MerchantService) GetMerchant(ctx context.Context, id int64) (*model.Merchant, error) {
	merchant, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return merchant, nil
}

// GetMerchantBySlug 前台按 slug 取商家
func (s *MerchantService) GetMerchantBySlug(ctx context.Context, sl string) (*model.Merchant, error) {
	merchant, err := s.merchantRepo.GetBySlug(ctx, sl)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return merchant, nil
}

// ListMerchants 商家列表
func (s *MerchantService) ListMerchants(ctx context.Context, filter repository.MerchantFilter) ([]model.Merchant, int64, error) {
	return s.merchantRepo.List(ctx, filter)
}

// DeleteMerchant 删除商家
func (s *MerchantService) DeleteMerchant(ctx context.Context, id int64) error {
	if _, err := s.merchantRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.merchantRepo.Delete(ctx, id)
}

// ==================== 状态流转 ====================

// ChangeStatus 按状态机流转商家状态，非法转移直接拒绝
func (s *MerchantService) ChangeStatus(ctx context.Context, id int64, to model.MerchantStatus) (*model.Merchant, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("非法状态值: %s", to)
	}

	merchant, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !merchant.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, merchant.Status, to)
	}

	if err := s.merchantRepo.UpdateFields(ctx, id, map[string]interface{}{"status": to}); err != nil {
		return nil, err
	}
	merchant.Status = to
	return merchant, nil
}

// ==================== 批量操作 ====================

// BulkAction 批量操作：并发逐条执行，逐条返回结果
func (s *MerchantService) BulkAction(ctx context.Context, action string, ids []int64) ([]dto.BulkItemResult, error) {
	var fn func(ctx context.Context, id int64) error

	switch action {
	case "publish":
		fn = func(ctx context.Context, id int64) error {
			_, err := s.ChangeStatus(ctx, id, model.MerchantStatusApproved)
			return err
		}
	case "suspend":
		fn = func(ctx context.Context, id int64) error {
			_, err := s.ChangeStatus(ctx, id, model.MerchantStatusSuspended)
			return err
		}
	case "delete":
		fn = s.DeleteMerchant
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	return runBulk(ctx, ids, fn), nil
}
