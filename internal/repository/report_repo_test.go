package repository

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reviewhub/internal/model"
)

// ==================== 测试辅助 ====================

func setupReportTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Report{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func seedReport(t *testing.T, repo ReportRepository, contentType model.ReportContentType, contentID int64, reason string) {
	t.Helper()
	err := repo.Create(context.Background(), &model.Report{
		ContentType: contentType,
		ContentID:   contentID,
		Reason:      reason,
		Status:      model.ReportStatusPending,
	})
	if err != nil {
		t.Fatalf("写入举报失败: %v", err)
	}
}

// ==================== 单元测试 ====================

func TestReportRepo_ListGroupsAggregates(t *testing.T) {
	repo := NewReportRepository(setupReportTestDB(t))
	ctx := context.Background()

	// 同一条评价被举报三次（两种理由），另一条评论被举报一次
	seedReport(t, repo, model.ReportContentReview, 10, "spam")
	seedReport(t, repo, model.ReportContentReview, 10, "spam")
	seedReport(t, repo, model.ReportContentReview, 10, "offensive")
	seedReport(t, repo, model.ReportContentComment, 5, "spam")

	groups, total, err := repo.ListGroups(ctx, ReportFilter{})
	if err != nil {
		t.Fatalf("分组列表失败: %v", err)
	}
	if total != 2 {
		t.Fatalf("应聚合为 2 组, 实际 %d", total)
	}

	var reviewGroup *model.ReportGroup
	for i := range groups {
		if groups[i].ContentType == model.ReportContentReview {
			reviewGroup = &groups[i]
		}
	}
	if reviewGroup == nil {
		t.Fatal("评价组缺失")
	}
	if reviewGroup.ReportCount != 3 {
		t.Fatalf("评价组应有 3 条举报, 实际 %d", reviewGroup.ReportCount)
	}
	if len(reviewGroup.Reasons) != 2 {
		t.Fatalf("理由应去重为 2 种, 实际 %v", reviewGroup.Reasons)
	}
	// SQLite 把聚合时间戳按字符串返回，解析后不应是零值
	if reviewGroup.FirstSeen.IsZero() || reviewGroup.LastSeen.IsZero() {
		t.Fatalf("聚合时间戳应解析成功: first=%v last=%v", reviewGroup.FirstSeen, reviewGroup.LastSeen)
	}
	if reviewGroup.LastSeen.Before(reviewGroup.FirstSeen) {
		t.Fatalf("last_seen 不应早于 first_seen: %v < %v", reviewGroup.LastSeen, reviewGroup.FirstSeen)
	}
}

func TestReportRepo_GetGroup(t *testing.T) {
	repo := NewReportRepository(setupReportTestDB(t))
	ctx := context.Background()

	seedReport(t, repo, model.ReportContentReview, 10, "spam")
	seedReport(t, repo, model.ReportContentReview, 10, "fake")

	group, err := repo.GetGroup(ctx, model.ReportContentReview, 10)
	if err != nil {
		t.Fatalf("取组失败: %v", err)
	}
	if group.ReportCount != 2 || len(group.Reports) != 2 {
		t.Fatalf("组内容不对: %+v", group)
	}

	if _, err := repo.GetGroup(ctx, model.ReportContentComment, 10); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("空组应返回 ErrRecordNotFound, 实际 %v", err)
	}
}

func TestReportRepo_ResolveGroupOnlyPending(t *testing.T) {
	db := setupReportTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	seedReport(t, repo, model.ReportContentReview, 10, "spam")
	seedReport(t, repo, model.ReportContentReview, 10, "fake")

	n, err := repo.ResolveGroup(ctx, model.ReportContentReview, 10, model.ReportStatusAccepted, 7)
	if err != nil {
		t.Fatalf("处理组失败: %v", err)
	}
	if n != 2 {
		t.Fatalf("应处理 2 条, 实际 %d", n)
	}

	// 已终态的组再处理是空操作
	n, err = repo.ResolveGroup(ctx, model.ReportContentReview, 10, model.ReportStatusRejected, 7)
	if err != nil || n != 0 {
		t.Fatalf("重复处理应为空操作: n=%d err=%v", n, err)
	}

	var resolved int64
	db.Model(&model.Report{}).
		Where("status = ? AND resolved_by = ?", model.ReportStatusAccepted, 7).
		Count(&resolved)
	if resolved != 2 {
		t.Fatalf("终态与处理人应落库: %d", resolved)
	}
}

func TestReportRepo_CountPendingByGroup(t *testing.T) {
	repo := NewReportRepository(setupReportTestDB(t))
	ctx := context.Background()

	seedReport(t, repo, model.ReportContentReview, 10, "spam")
	seedReport(t, repo, model.ReportContentReview, 10, "spam")
	seedReport(t, repo, model.ReportContentComment, 5, "spam")

	count, err := repo.CountPending(ctx)
	if err != nil {
		t.Fatalf("待处理计数失败: %v", err)
	}
	// 按组计数，不是按举报条数
	if count != 2 {
		t.Fatalf("待处理组数应为 2, 实际 %d", count)
	}

	if _, err := repo.ResolveGroup(ctx, model.ReportContentReview, 10, model.ReportStatusRejected, 1); err != nil {
		t.Fatalf("处理失败: %v", err)
	}
	count, _ = repo.CountPending(ctx)
	if count != 1 {
		t.Fatalf("处理后应剩 1 组, 实际 %d", count)
	}
}

func TestReportRepo_SetSpamScore(t *testing.T) {
	db := setupReportTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	seedReport(t, repo, model.ReportContentReview, 10, "spam")
	seedReport(t, repo, model.ReportContentReview, 10, "fake")

	if err := repo.SetSpamScore(ctx, model.ReportContentReview, 10, 0.87); err != nil {
		t.Fatalf("写入垃圾分失败: %v", err)
	}

	group, err := repo.GetGroup(ctx, model.ReportContentReview, 10)
	if err != nil {
		t.Fatalf("取组失败: %v", err)
	}
	if group.SpamScore != 0.87 {
		t.Fatalf("组垃圾分应为 0.87, 实际 %v", group.SpamScore)
	}
}
