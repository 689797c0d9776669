package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/pkg/logger"
)

// ReportService 举报处理业务
// 举报以 (contentType, contentId) 组为单位处理：
// accept -> 目标内容标记 spam，reject -> 内容保留，组内全部 pending 举报置终态
type ReportService struct {
	reportRepo repository.ReportRepository
	reviewSvc  *ReviewService
	moderation *ModerationService // 可选，nil 表示关闭 AI 预打分
}

// NewReportService 创建举报业务
func NewReportService(reportRepo repository.ReportRepository, reviewSvc *ReviewService, moderation *ModerationService) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		reviewSvc:  reviewSvc,
		moderation: moderation,
	}
}

// SubmitReport 提交举报（前台）
func (s *ReportService) SubmitReport(ctx context.Context, input *dto.ReportInput) (*model.Report, error) {
	report := &model.Report{
		ContentType: input.ContentType,
		ContentID:   input.ContentID,
		ReporterID:  input.ReporterID,
		Reason:      input.Reason,
		Status:      model.ReportStatusPending,
	}
	if input.Details != nil {
		raw, err := json.Marshal(input.Details)
		if err != nil {
			return nil, fmt.Errorf("举报载荷序列化失败: %w", err)
		}
		report.Details = datatypes.JSON(raw)
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	// AI 预打分是尽力而为，失败只记日志
	if s.moderation != nil {
		go s.prescoreGroup(input.ContentType, input.ContentID)
	}
	return report, nil
}

// prescoreGroup 对被举报内容打垃圾分，写回该组全部举报
func (s *ReportService) prescoreGroup(contentType model.ReportContentType, contentID int64) {
	ctx := context.Background()

	var content string
	if contentType == model.ReportContentReview {
		review, err := s.reviewSvc.GetReview(ctx, contentID)
		if err != nil {
			return
		}
		content = review.Title + "\n" + review.Content
	} else {
		comment, err := s.reviewSvc.reviewRepo.GetComment(ctx, contentID)
		if err != nil {
			return
		}
		content = comment.Content
	}

	score, err := s.moderation.ScoreSpam(ctx, content)
	if err != nil {
		logger.L().Warn("spam prescore failed",
			zap.String("content_type", string(contentType)),
			zap.Int64("content_id", contentID),
			zap.Error(err))
		return
	}
	if err := s.reportRepo.SetSpamScore(ctx, contentType, contentID, score); err != nil {
		logger.L().Warn("save spam score failed", zap.Error(err))
	}
}

// ListGroups 举报组列表
func (s *ReportService) ListGroups(ctx context.Context, filter repository.ReportFilter) ([]model.ReportGroup, int64, error) {
	return s.reportRepo.ListGroups(ctx, filter)
}

// GetGroup 举报组详情
func (s *ReportService) GetGroup(ctx context.Context, contentType model.ReportContentType, contentID int64) (*model.ReportGroup, error) {
	group, err := s.reportRepo.GetGroup(ctx, contentType, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

// Accept 采纳举报：目标内容标记 spam，组内 pending 举报置 accepted
func (s *ReportService) Accept(ctx context.Context, contentType model.ReportContentType, contentID int64, resolvedBy int64) (int64, error) {
	group, err := s.GetGroup(ctx, contentType, contentID)
	if err != nil {
		return 0, err
	}

	switch group.ContentType {
	case model.ReportContentReview:
		if err := s.reviewSvc.MarkSpam(ctx, contentID); err != nil && !errors.Is(err, ErrNotFound) {
			return 0, err
		}
	case model.ReportContentComment:
		if err := s.reviewSvc.DeleteComment(ctx, contentID); err != nil && !errors.Is(err, ErrNotFound) {
			return 0, err
		}
	}

	return s.reportRepo.ResolveGroup(ctx, contentType, contentID, model.ReportStatusAccepted, resolvedBy)
}

// Reject 驳回举报：内容保留，组内 pending 举报置 rejected
func (s *ReportService) Reject(ctx context.Context, contentType model.ReportContentType, contentID int64, resolvedBy int64) (int64, error) {
	if _, err := s.GetGroup(ctx, contentType, contentID); err != nil {
		return 0, err
	}
	return s.reportRepo.ResolveGroup(ctx, contentType, contentID, model.ReportStatusRejected, resolvedBy)
}

// CountPending 待处理组数，报表任务用
func (s *ReportService) CountPending(ctx context.Context) (int64, error) {
	return s.reportRepo.CountPending(ctx)
}
