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

// ==================== 测试辅助 ====================

func setupPromotionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&TestMerchant{}, &model.Category{}, &model.Promotion{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func newPromotionService(t *testing.T) (*PromotionService, *gorm.DB) {
	db := setupPromotionTestDB(t)
	svc := NewPromotionService(
		repository.NewPromotionRepository(db),
		repository.NewMerchantRepository(db),
	)
	return svc, db
}

// ==================== 单元测试 ====================

func TestPromotionService_CreateDefaults(t *testing.T) {
	svc, db := newPromotionService(t)
	ctx := context.Background()
	seedMerchant(t, db, 1, model.MerchantStatusApproved)

	promotion, err := svc.CreatePromotion(ctx, &dto.PromotionInput{
		MerchantID: 1,
		Title:      "九月特惠",
	})
	if err != nil {
		t.Fatalf("创建促销失败: %v", err)
	}
	if promotion.Type != model.PromotionTypeCommon {
		t.Fatalf("不填类型应落默认 common, 实际 %s", promotion.Type)
	}
	if !promotion.IsActive {
		t.Fatal("新促销默认启用")
	}
}

func TestPromotionService_UnknownMerchantRejected(t *testing.T) {
	svc, _ := newPromotionService(t)

	_, err := svc.CreatePromotion(context.Background(), &dto.PromotionInput{
		MerchantID: 42,
		Title:      "无主促销",
	})
	fe, ok := AsFieldErrors(err)
	if !ok || fe["merchantId"] == "" {
		t.Fatalf("商家不存在应返回字段错误, 实际 %v", err)
	}
}

func TestPromotionService_CreateBatchPartialFailure(t *testing.T) {
	svc, db := newPromotionService(t)
	ctx := context.Background()
	seedMerchant(t, db, 1, model.MerchantStatusApproved)

	// 三条提交：中间一条商家不存在
	resp := svc.CreateBatch(ctx, []dto.PromotionInput{
		{MerchantID: 1, Title: "第一条"},
		{MerchantID: 42, Title: "坏数据"},
		{MerchantID: 1, Title: "第三条"},
	})

	if resp.Succeeded != 2 || resp.Failed != 1 {
		t.Fatalf("汇总不对: %+v", resp)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("应逐条返回 3 个结果, 实际 %d", len(resp.Results))
	}
	if !resp.Results[0].OK || resp.Results[0].ID == 0 {
		t.Fatalf("第一条应成功并带新 id: %+v", resp.Results[0])
	}
	if resp.Results[1].OK || resp.Results[1].Error == "" {
		t.Fatalf("第二条应失败并带错误信息: %+v", resp.Results[1])
	}
	if !resp.Results[2].OK {
		t.Fatalf("中间失败不应影响后续条目: %+v", resp.Results[2])
	}

	// 前后两条确实入库，没有回滚
	var count int64
	db.Model(&model.Promotion{}).Count(&count)
	if count != 2 {
		t.Fatalf("应保留 2 条成功数据, 实际 %d", count)
	}
}

func TestPromotionService_UpdateCannotMoveMerchant(t *testing.T) {
	svc, db := newPromotionService(t)
	ctx := context.Background()
	seedMerchant(t, db, 1, model.MerchantStatusApproved)
	seedMerchant(t, db, 2, model.MerchantStatusPending)

	promotion, err := svc.CreatePromotion(ctx, &dto.PromotionInput{MerchantID: 1, Title: "原促销"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	_, err = svc.UpdatePromotion(ctx, promotion.ID, &dto.PromotionInput{
		MerchantID: 2,
		Title:      "改挂到别家",
	})
	fe, ok := AsFieldErrors(err)
	if !ok || fe["merchantId"] == "" {
		t.Fatalf("换商家应被拒绝, 实际 %v", err)
	}
}

func TestPromotionService_DeactivateExpired(t *testing.T) {
	svc, db := newPromotionService(t)
	ctx := context.Background()
	seedMerchant(t, db, 1, model.MerchantStatusApproved)

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	db.Create(&model.Promotion{MerchantID: 1, Title: "已过期", IsActive: true, EndDate: &yesterday})
	db.Create(&model.Promotion{MerchantID: 1, Title: "未过期", IsActive: true, EndDate: &tomorrow})
	db.Create(&model.Promotion{MerchantID: 1, Title: "无限期", IsActive: true})

	n, err := svc.DeactivateExpired(ctx, now, 100)
	if err != nil {
		t.Fatalf("过期扫描失败: %v", err)
	}
	if n != 1 {
		t.Fatalf("应只关停 1 条, 实际 %d", n)
	}

	var active int64
	db.Model(&model.Promotion{}).Where("is_active = ?", true).Count(&active)
	if active != 2 {
		t.Fatalf("剩余启用数不对: %d", active)
	}
}

func TestPromotionService_GetNotFound(t *testing.T) {
	svc, _ := newPromotionService(t)
	if _, err := svc.GetPromotion(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的促销应返回 ErrNotFound, 实际 %v", err)
	}
}
