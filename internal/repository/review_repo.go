package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// ReviewRepository 评价仓储接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	List(ctx context.Context, filter ReviewFilter) ([]model.Review, int64, error)

	// DeleteCascade 删除评价并级联删除其下全部评论，同一事务内完成
	DeleteCascade(ctx context.Context, id int64) error

	// 商家评分统计
	RatingStats(ctx context.Context, merchantID int64) (count int64, avg float64, err error)

	// 评论
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id int64) (*model.Comment, error)
	ListComments(ctx context.Context, reviewID int64) ([]model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// ReviewFilter 评价列表过滤条件
type ReviewFilter struct {
	MerchantID int64
	UserID     int64
	Status     model.ReviewStatus
	Rating     int
	Keyword    string
	Page       int
	Limit      int
}

type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments").
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *reviewRepo) List(ctx context.Context, filter ReviewFilter) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Review{})

	if filter.MerchantID > 0 {
		query = query.Where("merchant_id = ?", filter.MerchantID)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Rating > 0 {
		query = query.Where("rating = ?", filter.Rating)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", kw, kw)
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
		Preload("User").
		Preload("Comments").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&reviews).Error

	return reviews, total, err
}

func (r *reviewRepo) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Review{}, id).Error
	})
}

func (r *reviewRepo) RatingStats(ctx context.Context, merchantID int64) (int64, float64, error) {
	type row struct {
		Count int64
		Avg   float64
	}
	var result row
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as avg").
		Where("merchant_id = ? AND status = ?", merchantID, model.ReviewStatusActive).
		Scan(&result).Error
	return result.Count, result.Avg, err
}

func (r *reviewRepo) CreateComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *reviewRepo) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *reviewRepo) ListComments(ctx context.Context, reviewID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *reviewRepo) DeleteComment(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}
