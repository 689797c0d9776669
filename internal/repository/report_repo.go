package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// ReportRepository 举报仓储接口
// 举报按 (content_type, content_id) 聚合展示，处理也以组为单位
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	ListGroups(ctx context.Context, filter ReportFilter) ([]model.ReportGroup, int64, error)
	GetGroup(ctx context.Context, contentType model.ReportContentType, contentID int64) (*model.ReportGroup, error)
	ResolveGroup(ctx context.Context, contentType model.ReportContentType, contentID int64, status model.ReportStatus, resolvedBy int64) (int64, error)
	SetSpamScore(ctx context.Context, contentType model.ReportContentType, contentID int64, score float64) error
	CountPending(ctx context.Context) (int64, error)
}

// ReportFilter 举报组列表过滤条件
type ReportFilter struct {
	Status      model.ReportStatus
	ContentType model.ReportContentType
	Page        int
	Limit       int
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepository 创建举报仓储
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// groupRow GROUP BY 扫描行
// 聚合列丢失类型信息，SQLite 驱动会把 MIN/MAX(created_at) 按字符串返回，
// 这里统一按字符串接收再解析；Postgres 的 time.Time 值由 database/sql
// 自动转成 RFC3339 字符串，两边都能扫
type groupRow struct {
	ContentType model.ReportContentType
	ContentID   int64
	ReportCount int64
	FirstSeen   string
	LastSeen    string
	SpamScore   float64
}

// 聚合时间戳的候选格式：database/sql 的 RFC3339、SQLite 驱动的存储格式
var groupTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
}

func parseGroupTime(s string) time.Time {
	for _, layout := range groupTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r *reportRepo) ListGroups(ctx context.Context, filter ReportFilter) ([]model.ReportGroup, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Report{})
	if filter.Status != "" {
		base = base.Where("status = ?", filter.Status)
	}
	if filter.ContentType != "" {
		base = base.Where("content_type = ?", filter.ContentType)
	}

	// 组总数：对 GROUP BY 结果再计数，SQLite / Postgres 都兼容
	var total int64
	sub := base.Session(&gorm.Session{}).
		Select("content_type, content_id").
		Group("content_type, content_id")
	if err := r.db.WithContext(ctx).
		Table("(?) as grouped", sub).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	var rows []groupRow
	err := base.Session(&gorm.Session{}).
		Select("content_type, content_id, COUNT(*) as report_count, MIN(created_at) as first_seen, MAX(created_at) as last_seen, MAX(spam_score) as spam_score").
		Group("content_type, content_id").
		Order("last_seen DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	groups := make([]model.ReportGroup, 0, len(rows))
	for _, row := range rows {
		group := model.ReportGroup{
			ContentType: row.ContentType,
			ContentID:   row.ContentID,
			ReportCount: row.ReportCount,
			FirstSeen:   parseGroupTime(row.FirstSeen),
			LastSeen:    parseGroupTime(row.LastSeen),
			SpamScore:   row.SpamScore,
		}
		// 理由去重后附在组上
		var reasons []string
		if err := r.db.WithContext(ctx).
			Model(&model.Report{}).
			Where("content_type = ? AND content_id = ?", row.ContentType, row.ContentID).
			Distinct("reason").
			Pluck("reason", &reasons).Error; err != nil {
			return nil, 0, err
		}
		group.Reasons = reasons
		groups = append(groups, group)
	}

	return groups, total, nil
}

func (r *reportRepo) GetGroup(ctx context.Context, contentType model.ReportContentType, contentID int64) (*model.ReportGroup, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("content_type = ? AND content_id = ?", contentType, contentID).
		Order("created_at ASC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	group := &model.ReportGroup{
		ContentType: contentType,
		ContentID:   contentID,
		ReportCount: int64(len(reports)),
		FirstSeen:   reports[0].CreatedAt,
		LastSeen:    reports[len(reports)-1].CreatedAt,
		Reports:     reports,
	}
	seen := make(map[string]struct{})
	for _, report := range reports {
		if report.SpamScore > group.SpamScore {
			group.SpamScore = report.SpamScore
		}
		if _, ok := seen[report.Reason]; !ok {
			seen[report.Reason] = struct{}{}
			group.Reasons = append(group.Reasons, report.Reason)
		}
	}
	return group, nil
}

func (r *reportRepo) ResolveGroup(ctx context.Context, contentType model.ReportContentType, contentID int64, status model.ReportStatus, resolvedBy int64) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("content_type = ? AND content_id = ? AND status = ?", contentType, contentID, model.ReportStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_by": resolvedBy,
			"resolved_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *reportRepo) SetSpamScore(ctx context.Context, contentType model.ReportContentType, contentID int64, score float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("content_type = ? AND content_id = ?", contentType, contentID).
		Update("spam_score", score).Error
}

func (r *reportRepo) CountPending(ctx context.Context) (int64, error) {
	var count int64
	sub := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Select("content_type, content_id").
		Where("status = ?", model.ReportStatusPending).
		Group("content_type, content_id")
	err := r.db.WithContext(ctx).
		Table("(?) as grouped", sub).
		Count(&count).Error
	return count, err
}
