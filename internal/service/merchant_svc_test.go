package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// ==================== 测试模型 ====================

// TestMerchant 简化的商家表，只保留状态流转相关列
// Screenshots 的 text[] 列 SQLite 不支持，测试里整列省略
type TestMerchant struct {
	ID         int64 `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	Slug       string
	Name       string
	CategoryID int64
	Status     string
}

func (TestMerchant) TableName() string { return "merchants" }

// ==================== 测试辅助 ====================

func setupMerchantTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	// GetByID 会预加载 Category / Promotions，相关表要一并建出来
	if err := db.AutoMigrate(&TestMerchant{}, &model.Category{}, &model.Promotion{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func seedMerchant(t *testing.T, db *gorm.DB, id int64, status model.MerchantStatus) {
	t.Helper()
	err := db.Create(&TestMerchant{
		ID:         id,
		Slug:       "shop-" + string(status),
		Name:       "Shop",
		CategoryID: 1,
		Status:     string(status),
	}).Error
	if err != nil {
		t.Fatalf("写入测试商家失败: %v", err)
	}
}

func newMerchantService(t *testing.T) (*MerchantService, *gorm.DB) {
	db := setupMerchantTestDB(t)
	svc := NewMerchantService(
		repository.NewMerchantRepository(db),
		repository.NewCategoryRepository(db),
	)
	return svc, db
}

// ==================== 校验 ====================

func TestMerchantService_ValidateInput(t *testing.T) {
	svc, _ := newMerchantService(t)

	errs := svc.ValidateInput(&dto.MerchantInput{
		Email:   "no-at-sign",
		Website: "ftp://example.com",
	})
	for _, field := range []string{"name", "slug", "description", "category", "email", "website"} {
		if errs[field] == "" {
			t.Errorf("字段 %s 应有校验错误: %v", field, errs)
		}
	}

	errs = svc.ValidateInput(&dto.MerchantInput{
		Name:        "Demo Shop",
		Slug:        "demo-shop",
		Description: "desc",
		CategoryID:  1,
		Email:       "a@b.com",
		Website:     "https://demo.example",
	})
	if errs.Any() {
		t.Fatalf("合法输入不应有错误: %v", errs)
	}

	// slug 带非法字符
	errs = svc.ValidateInput(&dto.MerchantInput{
		Name:        "Demo",
		Slug:        "Demo Shop!",
		Description: "desc",
		CategoryID:  1,
	})
	if errs["slug"] == "" {
		t.Fatalf("非法 slug 应报错: %v", errs)
	}
}

// ==================== 状态流转 ====================

func TestMerchantService_ChangeStatus(t *testing.T) {
	svc, db := newMerchantService(t)
	ctx := context.Background()

	seedMerchant(t, db, 1, model.MerchantStatusPending)

	merchant, err := svc.ChangeStatus(ctx, 1, model.MerchantStatusApproved)
	if err != nil {
		t.Fatalf("合法流转失败: %v", err)
	}
	if merchant.Status != model.MerchantStatusApproved {
		t.Fatalf("返回的状态不对: %s", merchant.Status)
	}

	// 落库核实
	var row TestMerchant
	db.First(&row, 1)
	if row.Status != string(model.MerchantStatusApproved) {
		t.Fatalf("数据库状态不对: %s", row.Status)
	}
}

func TestMerchantService_ChangeStatusRejectsInvalidTransition(t *testing.T) {
	svc, db := newMerchantService(t)
	ctx := context.Background()

	seedMerchant(t, db, 1, model.MerchantStatusDraft)

	_, err := svc.ChangeStatus(ctx, 1, model.MerchantStatusApproved)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("draft -> approved 应被拒绝, 实际 %v", err)
	}

	// 非法状态值直接拒绝
	if _, err := svc.ChangeStatus(ctx, 1, model.MerchantStatus("banana")); err == nil {
		t.Fatal("非法状态值应报错")
	}

	if _, err := svc.ChangeStatus(ctx, 404, model.MerchantStatusPending); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的商家应返回 ErrNotFound, 实际 %v", err)
	}
}

// ==================== 批量操作 ====================

func TestMerchantService_BulkActionPerItemResults(t *testing.T) {
	svc, db := newMerchantService(t)
	ctx := context.Background()

	seedMerchantSlug := func(id int64, status model.MerchantStatus, slug string) {
		db.Create(&TestMerchant{ID: id, Slug: slug, Name: "Shop", CategoryID: 1, Status: string(status)})
	}
	seedMerchantSlug(1, model.MerchantStatusPending, "a")
	seedMerchantSlug(2, model.MerchantStatusDraft, "b")
	// id=3 不存在

	results, err := svc.BulkAction(ctx, "publish", []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("批量操作失败: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("应逐条返回 3 个结果, 实际 %d", len(results))
	}

	byID := map[int64]dto.BulkItemResult{}
	for _, r := range results {
		byID[r.ID] = r
	}
	if !byID[1].OK {
		t.Fatalf("pending -> approved 应成功: %+v", byID[1])
	}
	if byID[2].OK || byID[2].Error == "" {
		t.Fatalf("draft -> approved 应失败并带错误信息: %+v", byID[2])
	}
	if byID[3].OK {
		t.Fatalf("不存在的 id 应失败: %+v", byID[3])
	}

	// 失败条目不影响成功条目落库
	var row TestMerchant
	db.First(&row, 1)
	if row.Status != string(model.MerchantStatusApproved) {
		t.Fatalf("成功条目应已落库: %s", row.Status)
	}
}

func TestMerchantService_BulkActionUnknownAction(t *testing.T) {
	svc, _ := newMerchantService(t)
	if _, err := svc.BulkAction(context.Background(), "explode", []int64{1}); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("未知动作应返回 ErrInvalidAction, 实际 %v", err)
	}
}

func TestMerchantService_DeleteMerchant(t *testing.T) {
	svc, db := newMerchantService(t)
	ctx := context.Background()

	seedMerchant(t, db, 1, model.MerchantStatusApproved)

	if err := svc.DeleteMerchant(ctx, 1); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if err := svc.DeleteMerchant(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("重复删除应返回 ErrNotFound, 实际 %v", err)
	}
}
