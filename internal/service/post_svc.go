package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// PostService 文章业务
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService 创建文章业务
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ValidateInput 文章表单校验
func (s *PostService) ValidateInput(input *dto.PostInput) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(input.Title) == "" {
		errs["title"] = "标题必填"
	}
	if strings.TrimSpace(input.Slug) == "" {
		errs["slug"] = "slug 必填"
	} else if !slug.IsSlug(input.Slug) {
		errs["slug"] = "slug 格式非法"
	}
	if strings.TrimSpace(input.Content) == "" {
		errs["content"] = "正文必填"
	}
	if input.CategoryID <= 0 {
		errs["category"] = "分类必选"
	}
	return errs
}

// resolvePostStatus 具名动作 + 定时配置 -> 状态
// publish 且带未来的 ScheduledAt 时落为 scheduled
func resolvePostStatus(action string, scheduledAt *time.Time, now time.Time) (model.PostStatus, error) {
	switch action {
	case "save_draft", "":
		return model.PostStatusDraft, nil
	case "publish":
		if scheduledAt != nil && scheduledAt.After(now) {
			return model.PostStatusScheduled, nil
		}
		return model.PostStatusPublished, nil
	default:
		return "", fmt.Errorf("未知提交动作: %s", action)
	}
}

// CreatePost 创建文章
func (s *PostService) CreatePost(ctx context.Context, input *dto.PostInput, action string) (*model.Post, error) {
	if input.Slug == "" && input.Title != "" {
		input.Slug = slug.Make(input.Title)
	}
	if errs := s.ValidateInput(input); errs.Any() {
		return nil, errs
	}

	taken, err := s.postRepo.SlugExists(ctx, input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, FieldErrors{"slug": "slug 已被占用"}
	}

	now := time.Now()
	status, err := resolvePostStatus(action, input.ScheduledAt, now)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:         input.Title,
		Slug:          input.Slug,
		Excerpt:       input.Excerpt,
		Content:       input.Content,
		Status:        status,
		CategoryID:    input.CategoryID,
		Tags:          model.NormalizeTags(input.Tags),
		FeaturedImage: input.FeaturedImage,
		ScheduledAt:   input.ScheduledAt,
	}
	if input.SEO != nil {
		post.SEO = *input.SEO
	}
	if status == model.PostStatusPublished {
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost 更新文章
func (s *PostService) UpdatePost(ctx context.Context, id int64, input *dto.PostInput, action string) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Slug == "" {
		input.Slug = post.Slug
	}
	if errs := s.ValidateInput(input); errs.Any() {
		return nil, errs
	}

	if input.Slug != post.Slug {
		taken, err := s.postRepo.SlugExists(ctx, input.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, FieldErrors{"slug": "slug 已被占用"}
		}
	}

	post.Title = input.Title
	post.Slug = input.Slug
	post.Excerpt = input.Excerpt
	post.Content = input.Content
	post.CategoryID = input.CategoryID
	post.Tags = model.NormalizeTags(input.Tags)
	post.FeaturedImage = input.FeaturedImage
	post.ScheduledAt = input.ScheduledAt
	if input.SEO != nil {
		post.SEO = *input.SEO
	}

	if action != "" {
		now := time.Now()
		status, err := resolvePostStatus(action, input.ScheduledAt, now)
		if err != nil {
			return nil, err
		}
		if status == model.PostStatusPublished && post.Status != model.PostStatusPublished {
			post.PublishedAt = &now
		}
		post.Status = status
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost 文章详情
func (s *PostService) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListPosts 文章列表
func (s *PostService) ListPosts(ctx context.Context, filter repository.PostFilter) ([]model.Post, int64, error) {
	return s.postRepo.List(ctx, filter)
}

// DeletePost 删除：已在回收站的硬删，否则移入回收站
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if post.Status == model.PostStatusTrash {
		return s.postRepo.Delete(ctx, id)
	}
	return s.postRepo.UpdateFields(ctx, id, map[string]interface{}{"status": model.PostStatusTrash})
}

// BulkAction 文章批量操作
func (s *PostService) BulkAction(ctx context.Context, action string, ids []int64) ([]dto.BulkItemResult, error) {
	var fn func(ctx context.Context, id int64) error

	switch action {
	case "publish":
		fn = func(ctx context.Context, id int64) error {
			now := time.Now()
			return s.postRepo.UpdateFields(ctx, id, map[string]interface{}{
				"status":       model.PostStatusPublished,
				"published_at": now,
			})
		}
	case "trash":
		fn = func(ctx context.Context, id int64) error {
			return s.postRepo.UpdateFields(ctx, id, map[string]interface{}{"status": model.PostStatusTrash})
		}
	case "delete":
		fn = s.DeletePost
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	return runBulk(ctx, ids, fn), nil
}

// PublishDue 把到期的定时文章置为已发布，返回发布数
// 定时任务调用
func (s *PostService) PublishDue(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := s.postRepo.ListDuePublish(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, post := range due {
		err := s.postRepo.UpdateFields(ctx, post.ID, map[string]interface{}{
			"status":       model.PostStatusPublished,
			"published_at": now,
		})
		if err != nil {
			return published, err
		}
		published++
	}
	return published, nil
}
