package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// PromotionRepository 促销仓储接口
type PromotionRepository interface {
	Create(ctx context.Context, promotion *model.Promotion) error
	GetByID(ctx context.Context, id int64) (*model.Promotion, error)
	Update(ctx context.Context, promotion *model.Promotion) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PromotionFilter) ([]model.Promotion, int64, error)

	// 过期扫描任务用：isActive 且 end_date 已过的促销
	ListExpired(ctx context.Context, before time.Time, limit int) ([]model.Promotion, error)
	DeactivateByIDs(ctx context.Context, ids []int64) error
}

// PromotionFilter 促销列表过滤条件
type PromotionFilter struct {
	MerchantID int64
	Type       model.PromotionType
	ActiveOnly bool
	Keyword    string
	Page       int
	Limit      int
}

type promotionRepo struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓储
func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepo{db: db}
}

func (r *promotionRepo) Create(ctx context.Context, promotion *model.Promotion) error {
	return r.db.WithContext(ctx).Create(promotion).Error
}

func (r *promotionRepo) GetByID(ctx context.Context, id int64) (*model.Promotion, error) {
	var promotion model.Promotion
	err := r.db.WithContext(ctx).First(&promotion, id).Error
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *promotionRepo) Update(ctx context.Context, promotion *model.Promotion) error {
	return r.db.WithContext(ctx).Save(promotion).Error
}

func (r *promotionRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Promotion{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *promotionRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Promotion{}, id).Error
}

func (r *promotionRepo) List(ctx context.Context, filter PromotionFilter) ([]model.Promotion, int64, error) {
	var promotions []model.Promotion
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Promotion{})

	if filter.MerchantID > 0 {
		query = query.Where("merchant_id = ?", filter.MerchantID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&promotions).Error

	return promotions, total, err
}

func (r *promotionRepo) ListExpired(ctx context.Context, before time.Time, limit int) ([]model.Promotion, error) {
	var promotions []model.Promotion
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, before).
		Limit(limit).
		Find(&promotions).Error
	return promotions, err
}

func (r *promotionRepo) DeactivateByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Promotion{}).
		Where("id IN ?", ids).
		Update("is_active", false).Error
}
