package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// PromotionService 促销业务
type PromotionService struct {
	promotionRepo repository.PromotionRepository
	merchantRepo  repository.MerchantRepository
}

// NewPromotionService 创建促销业务
func NewPromotionService(promotionRepo repository.PromotionRepository, merchantRepo repository.MerchantRepository) *PromotionService {
	return &PromotionService{
		promotionRepo: promotionRepo,
		merchantRepo:  merchantRepo,
	}
}

// ValidateInput 促销表单校验
// 日期范围两端都含当天，且不强制 StartDate <= EndDate
func (s *PromotionService) ValidateInput(input *dto.PromotionInput) FieldErrors {
	errs := FieldErrors{}
	if input.MerchantID <= 0 {
		errs["merchantId"] = "商家必选"
	}
	if strings.TrimSpace(input.Title) == "" {
		errs["title"] = "标题必填"
	}
	if input.Type != "" && !input.Type.Valid() {
		errs["type"] = "促销类型非法"
	}
	return errs
}

// CreatePromotion 创建单条促销
func (s *PromotionService) CreatePromotion(ctx context.Context, input *dto.PromotionInput) (*model.Promotion, error) {
	if errs := s.ValidateInput(input); errs.Any() {
		return nil, errs
	}

	if _, err := s.merchantRepo.GetByID(ctx, input.MerchantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FieldErrors{"merchantId": "商家不存在"}
		}
		return nil, err
	}

	promoType := input.Type
	if promoType == "" {
		promoType = model.PromotionTypeCommon
	}

	promotion := &model.Promotion{
		MerchantID:     input.MerchantID,
		Title:          input.Title,
		Description:    input.Description,
		Type:           promoType,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		GiftCodes:      input.GiftCodes,
		LoginRequired:  input.LoginRequired,
		ReviewRequired: input.ReviewRequired,
		IsActive:       true,
	}
	if input.IsActive != nil {
		promotion.IsActive = *input.IsActive
	}

	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// CreateBatch 批量创建促销
// 逐条入库，不保证事务性：中间一条失败，前后成功的条目保留
func (s *PromotionService) CreateBatch(ctx context.Context, inputs []dto.PromotionInput) dto.PromotionBatchResp {
	resp := dto.PromotionBatchResp{
		Results: make([]dto.PromotionBatchItem, 0, len(inputs)),
	}

	for i := range inputs {
		promotion, err := s.CreatePromotion(ctx, &inputs[i])
		if err != nil {
			resp.Results = append(resp.Results, dto.PromotionBatchItem{
				Index: i,
				OK:    false,
				Error: err.Error(),
			})
			resp.Failed++
			continue
		}
		resp.Results = append(resp.Results, dto.PromotionBatchItem{
			Index: i,
			OK:    true,
			ID:    promotion.ID,
		})
		resp.Succeeded++
	}
	return resp
}

// UpdatePromotion 更新促销
func (s *PromotionService) UpdatePromotion(ctx context.Context, id int64, input *dto.PromotionInput) (*model.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.MerchantID == 0 {
		input.MerchantID = promotion.MerchantID
	}
	if errs := s.ValidateInput(input); errs.Any() {
		return nil, errs
	}
	// 促销不允许换商家
	if input.MerchantID != promotion.MerchantID {
		return nil, FieldErrors{"merchantId": "促销不能转移商家"}
	}

	promotion.Title = input.Title
	promotion.Description = input.Description
	if input.Type != "" {
		promotion.Type = input.Type
	}
	promotion.StartDate = input.StartDate
	promotion.EndDate = input.EndDate
	promotion.GiftCodes = input.GiftCodes
	promotion.LoginRequired = input.LoginRequired
	promotion.ReviewRequired = input.ReviewRequired
	if input.IsActive != nil {
		promotion.IsActive = *input.IsActive
	}

	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// GetPromotion 促销详情
func (s *PromotionService) GetPromotion(ctx context.Context, id int64) (*model.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return promotion, nil
}

// ListPromotions 促销列表
func (s *PromotionService) ListPromotions(ctx context.Context, filter repository.PromotionFilter) ([]model.Promotion, int64, error) {
	return s.promotionRepo.List(ctx, filter)
}

// DeletePromotion 删除促销
func (s *PromotionService) DeletePromotion(ctx context.Context, id int64) error {
	if _, err := s.promotionRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.promotionRepo.Delete(ctx, id)
}

// BulkAction 促销批量操作
func (s *PromotionService) BulkAction(ctx context.Context, action string, ids []int64) ([]dto.BulkItemResult, error) {
	var fn func(ctx context.Context, id int64) error

	switch action {
	case "activate":
		fn = func(ctx context.Context, id int64) error {
			return s.promotionRepo.UpdateFields(ctx, id, map[string]interface{}{"is_active": true})
		}
	case "deactivate":
		fn = func(ctx context.Context, id int64) error {
			return s.promotionRepo.UpdateFields(ctx, id, map[string]interface{}{"is_active": false})
		}
	case "delete":
		fn = s.DeletePromotion
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	return runBulk(ctx, ids, fn), nil
}

// DeactivateExpired 关停已过期的促销，返回关停数
// EndDate 含当天，所以比较基准是当天零点
func (s *PromotionService) DeactivateExpired(ctx context.Context, now time.Time, limit int) (int, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	expired, err := s.promotionRepo.ListExpired(ctx, dayStart, limit)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(expired))
	for _, p := range expired {
		ids = append(ids, p.ID)
	}
	if err := s.promotionRepo.DeactivateByIDs(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}
