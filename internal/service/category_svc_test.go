package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// ==================== 测试辅助 ====================

func setupCategoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Category{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func newCategoryService(t *testing.T) (*CategoryService, *gorm.DB) {
	db := setupCategoryTestDB(t)
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

// ==================== 单元测试 ====================

func TestCategoryService_CreateGeneratesSlug(t *testing.T) {
	svc, _ := newCategoryService(t)

	category, err := svc.CreateCategory(context.Background(), &dto.CategoryInput{Name: "Home Decor"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	if category.Slug != "home-decor" {
		t.Fatalf("slug 应由名称派生, 实际 %q", category.Slug)
	}
}

func TestCategoryService_SlugConflict(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, &dto.CategoryInput{Name: "Jewelry"}); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}

	_, err := svc.CreateCategory(ctx, &dto.CategoryInput{Name: "Other", Slug: "jewelry"})
	fe, ok := AsFieldErrors(err)
	if !ok || fe["slug"] == "" {
		t.Fatalf("slug 冲突应返回字段错误, 实际 %v", err)
	}
}

func TestCategoryService_UnknownParentRejected(t *testing.T) {
	svc, _ := newCategoryService(t)

	missing := int64(999)
	_, err := svc.CreateCategory(context.Background(), &dto.CategoryInput{
		Name:     "Sub",
		ParentID: &missing,
	})
	fe, ok := AsFieldErrors(err)
	if !ok || fe["parentId"] == "" {
		t.Fatalf("父分类不存在应返回字段错误, 实际 %v", err)
	}
}

func TestCategoryService_SelfParentRejected(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, &dto.CategoryInput{Name: "Loop"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	_, err = svc.UpdateCategory(ctx, category.ID, &dto.CategoryInput{
		Name:     "Loop",
		ParentID: &category.ID,
	})
	fe, ok := AsFieldErrors(err)
	if !ok || fe["parentId"] == "" {
		t.Fatalf("自引用父级应被拒绝, 实际 %v", err)
	}
}

func TestCategoryService_DeleteWithChildrenRefused(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	parent, _ := svc.CreateCategory(ctx, &dto.CategoryInput{Name: "Parent"})
	child, _ := svc.CreateCategory(ctx, &dto.CategoryInput{Name: "Child", ParentID: &parent.ID})

	if err := svc.DeleteCategory(ctx, parent.ID); err == nil {
		t.Fatal("有子分类的父级不应允许删除")
	}

	// 先删子再删父
	if err := svc.DeleteCategory(ctx, child.ID); err != nil {
		t.Fatalf("删除子分类失败: %v", err)
	}
	if err := svc.DeleteCategory(ctx, parent.ID); err != nil {
		t.Fatalf("删除无子分类的父级失败: %v", err)
	}
}

// ==================== 树形处理 ====================

func TestBuildCategoryTree(t *testing.T) {
	p := func(v int64) *int64 { return &v }
	all := []model.Category{
		{BaseModel: model.BaseModel{ID: 1}, Name: "Root A"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "Child A1", ParentID: p(1)},
		{BaseModel: model.BaseModel{ID: 3}, Name: "Grandchild", ParentID: p(2)},
		{BaseModel: model.BaseModel{ID: 4}, Name: "Root B"},
		// 父级已删：按顶级处理
		{BaseModel: model.BaseModel{ID: 5}, Name: "Orphan", ParentID: p(99)},
	}

	tree := BuildCategoryTree(all)
	if len(tree) != 3 {
		t.Fatalf("应有 3 个顶级节点（含悬空父级的孤儿）, 实际 %d", len(tree))
	}
	if len(tree[0].Children) != 1 || len(tree[0].Children[0].Children) != 1 {
		t.Fatalf("子树结构不对: %+v", tree[0])
	}
}

func TestFlattenCategories_Depth(t *testing.T) {
	p := func(v int64) *int64 { return &v }
	all := []model.Category{
		{BaseModel: model.BaseModel{ID: 1}, Name: "Root"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "Child", ParentID: p(1)},
		{BaseModel: model.BaseModel{ID: 3}, Name: "Grandchild", ParentID: p(2)},
	}

	flat := FlattenCategories(all)
	if len(flat) != 3 {
		t.Fatalf("展开后应有 3 条, 实际 %d", len(flat))
	}
	wantDepth := []int{0, 1, 2}
	for i, f := range flat {
		if f.Depth != wantDepth[i] {
			t.Errorf("第 %d 条深度应为 %d, 实际 %d", i, wantDepth[i], f.Depth)
		}
	}
}

func TestFlattenCategories_CycleTerminates(t *testing.T) {
	p := func(v int64) *int64 { return &v }
	// 脏数据形成环：1 -> 2 -> 1
	all := []model.Category{
		{BaseModel: model.BaseModel{ID: 1}, Name: "A", ParentID: p(2)},
		{BaseModel: model.BaseModel{ID: 2}, Name: "B", ParentID: p(1)},
	}

	// 只要求不死循环
	flat := FlattenCategories(all)
	if len(flat) > 2 {
		t.Fatalf("环数据不应重复展开: %v", flat)
	}
}
