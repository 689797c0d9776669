package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/pkg/logger"
)

// ReviewService 评价业务
type ReviewService struct {
	reviewRepo   repository.ReviewRepository
	merchantRepo repository.MerchantRepository
}

// NewReviewService 创建评价业务
func NewReviewService(reviewRepo repository.ReviewRepository, merchantRepo repository.MerchantRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		merchantRepo: merchantRepo,
	}
}

// CreateReview 创建评价并刷新商家评分统计
func (s *ReviewService) CreateReview(ctx context.Context, input *dto.ReviewInput) (*model.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, FieldErrors{"rating": "评分必须在 1-5 之间"}
	}

	merchant, err := s.merchantRepo.GetByID(ctx, input.MerchantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FieldErrors{"merchantId": "商家不存在"}
		}
		return nil, err
	}
	if !merchant.Flags.AllowReviews {
		return nil, fmt.Errorf("该商家已关闭评价")
	}

	review := &model.Review{
		MerchantID: input.MerchantID,
		UserID:     input.UserID,
		Rating:     input.Rating,
		Title:      input.Title,
		Content:    input.Content,
		Status:     model.ReviewStatusActive,
		Images:     input.Images,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshMerchantStats(ctx, input.MerchantID); err != nil {
		// 统计冗余字段刷新失败不回滚评价本身
		logger.L().Warn("refresh merchant stats failed",
			zap.Int64("merchant_id", input.MerchantID), zap.Error(err))
	}
	return review, nil
}

// GetReview 评价详情（含评论）
func (s *ReviewService) GetReview(ctx context.Context, id int64) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

// ListReviews 评价列表
func (s *ReviewService) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]model.Review, int64, error) {
	return s.reviewRepo.List(ctx, filter)
}

// DeleteReview 删除评价，评论级联删除，然后刷新商家统计
func (s *ReviewService) DeleteReview(ctx context.Context, id int64) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.reviewRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	if err := s.refreshMerchantStats(ctx, review.MerchantID); err != nil {
		logger.L().Warn("refresh merchant stats failed",
			zap.Int64("merchant_id", review.MerchantID), zap.Error(err))
	}
	return nil
}

// MarkSpam 举报采纳后调用：评价置为 spam，并从商家统计中剔除
func (s *ReviewService) MarkSpam(ctx context.Context, id int64) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.reviewRepo.UpdateFields(ctx, id, map[string]interface{}{"status": model.ReviewStatusSpam}); err != nil {
		return err
	}
	return s.refreshMerchantStats(ctx, review.MerchantID)
}

// refreshMerchantStats 重算商家的评价数与均分
func (s *ReviewService) refreshMerchantStats(ctx context.Context, merchantID int64) error {
	count, avg, err := s.reviewRepo.RatingStats(ctx, merchantID)
	if err != nil {
		return err
	}
	return s.merchantRepo.UpdateRatingStats(ctx, merchantID, int(count), avg)
}

// ==================== 评论 ====================

// CreateComment 给评价添加评论
func (s *ReviewService) CreateComment(ctx context.Context, reviewID int64, input *dto.CommentInput) (*model.Comment, error) {
	if input.Reaction != "" && !model.ValidReaction(input.Reaction) {
		return nil, FieldErrors{"reaction": "表情不在允许集合内"}
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	merchant, err := s.merchantRepo.GetByID(ctx, review.MerchantID)
	if err != nil {
		return nil, err
	}
	if !merchant.Flags.AllowComments {
		return nil, fmt.Errorf("该商家已关闭评论")
	}

	comment := &model.Comment{
		ReviewID: reviewID,
		UserID:   input.UserID,
		Content:  input.Content,
		Reaction: input.Reaction,
	}
	if err := s.reviewRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments 评论列表
func (s *ReviewService) ListComments(ctx context.Context, reviewID int64) ([]model.Comment, error) {
	return s.reviewRepo.ListComments(ctx, reviewID)
}

// DeleteComment 删除单条评论
func (s *ReviewService) DeleteComment(ctx context.Context, id int64) error {
	if _, err := s.reviewRepo.GetComment(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.reviewRepo.DeleteComment(ctx, id)
}
