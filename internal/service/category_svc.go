package service

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// CategoryService 分类业务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类业务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory 创建分类
func (s *CategoryService) CreateCategory(ctx context.Context, input *dto.CategoryInput) (*model.Category, error) {
	if input.Slug == "" {
		input.Slug = slug.Make(input.Name)
	}

	taken, err := s.categoryRepo.SlugExists(ctx, input.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, FieldErrors{"slug": "slug 已被占用"}
	}

	if input.ParentID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldErrors{"parentId": "父分类不存在"}
			}
			return nil, err
		}
	}

	category := &model.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		ParentID:    input.ParentID,
		SortOrder:   input.SortOrder,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory 更新分类
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, input *dto.CategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Slug == "" {
		input.Slug = category.Slug
	}
	if input.Slug != category.Slug {
		taken, err := s.categoryRepo.SlugExists(ctx, input.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, FieldErrors{"slug": "slug 已被占用"}
		}
	}

	// 不允许把自己设为父级
	if input.ParentID != nil && *input.ParentID == id {
		return nil, FieldErrors{"parentId": "分类不能作为自己的父级"}
	}

	category.Name = input.Name
	category.Slug = input.Slug
	category.Description = input.Description
	category.ParentID = input.ParentID
	category.SortOrder = input.SortOrder

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 删除分类，存在子分类时拒绝
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return ErrHasChildren
	}

	return s.categoryRepo.Delete(ctx, id)
}

// GetCategory 分类详情
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

// ==================== 树形处理 ====================

// ListTree 按 ParentID 拼出分类树
func (s *CategoryService) ListTree(ctx context.Context) ([]model.Category, error) {
	all, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(all), nil
}

// ListFlat 下拉框用：递归展开成带缩进深度的扁平列表
func (s *CategoryService) ListFlat(ctx context.Context) ([]model.FlatCategory, error) {
	all, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FlattenCategories(all), nil
}

// BuildCategoryTree 把平铺的分类按 ParentID 拼成树
// 悬空的 ParentID（父级已删）按顶级处理
func BuildCategoryTree(all []model.Category) []model.Category {
	byID := make(map[int64]bool, len(all))
	for _, c := range all {
		byID[c.ID] = true
	}

	children := make(map[int64][]model.Category)
	var roots []model.Category
	for _, c := range all {
		if c.ParentID == nil || !byID[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	var attach func(node *model.Category)
	attach = func(node *model.Category) {
		node.Children = children[node.ID]
		for i := range node.Children {
			attach(&node.Children[i])
		}
	}
	for i := range roots {
		attach(&roots[i])
	}
	return roots
}

// FlattenCategories 树形递归展开，Depth 记录层级
// 已访问的节点跳过，环不会死循环
func FlattenCategories(all []model.Category) []model.FlatCategory {
	tree := BuildCategoryTree(all)
	out := make([]model.FlatCategory, 0, len(all))
	visited := make(map[int64]bool, len(all))

	var walk func(nodes []model.Category, depth int)
	walk = func(nodes []model.Category, depth int) {
		for _, node := range nodes {
			if visited[node.ID] {
				continue
			}
			visited[node.ID] = true
			out = append(out, model.FlatCategory{
				ID:    node.ID,
				Name:  node.Name,
				Slug:  node.Slug,
				Depth: depth,
			})
			walk(node.Children, depth+1)
		}
	}
	walk(tree, 0)
	return out
}
