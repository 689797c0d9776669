package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// ==================== 接口定义 ====================

// MerchantRepository 商家仓储接口
type MerchantRepository interface {
	Create(ctx context.Context, merchant *model.Merchant) error
	GetByID(ctx context.Context, id int64) (*model.Merchant, error)
	GetBySlug(ctx context.Context, slug string) (*model.Merchant, error)
	Update(ctx context.Context, merchant *model.Merchant) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter MerchantFilter) ([]model.Merchant, int64, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	UpdateRatingStats(ctx context.Context, id int64, count int, avg float64) error

	WithTx(tx *gorm.DB) MerchantRepository
	Transaction(ctx context.Context, fn func(txRepo MerchantRepository) error) error
}

// ==================== 过滤条件 ====================

// MerchantFilter 商家列表过滤条件
type MerchantFilter struct {
	Status     model.MerchantStatus
	CategoryID int64
	Keyword    string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

// ==================== 仓储实现 ====================

type merchantRepo struct {
	db *gorm.DB
}

// NewMerchantRepository 创建商家仓储
func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepo{db: db}
}

func (r *merchantRepo) Create(ctx context.Context, merchant *model.Merchant) error {
	return r.db.WithContext(ctx).Create(merchant).Error
}

func (r *merchantRepo) GetByID(ctx context.Context, id int64) (*model.Merchant, error) {
	var merchant model.Merchant
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Promotions").
		First(&merchant, id).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *merchantRepo) GetBySlug(ctx context.Context, slug string) (*model.Merchant, error) {
	var merchant model.Merchant
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Promotions").
		Where("slug = ?", slug).
		First(&merchant).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *merchantRepo) Update(ctx context.Context, merchant *model.Merchant) error {
	return r.db.WithContext(ctx).Save(merchant).Error
}

func (r *merchantRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Merchant{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *merchantRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Merchant{}, id).Error
}

func (r *merchantRepo) List(ctx context.Context, filter MerchantFilter) ([]model.Merchant, int64, error) {
	var merchants []model.Merchant
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Merchant{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR slug LIKE ?", kw, kw)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
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
		Preload("Category").
		Order("updated_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&merchants).Error

	return merchants, total, err
}

func (r *merchantRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.Merchant{}).
		Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *merchantRepo) UpdateRatingStats(ctx context.Context, id int64, count int, avg float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Merchant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"review_count":   count,
			"average_rating": avg,
		}).Error
}

func (r *merchantRepo) WithTx(tx *gorm.DB) MerchantRepository {
	return &merchantRepo{db: tx}
}

func (r *merchantRepo) Transaction(ctx context.Context, fn func(txRepo MerchantRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
