package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"reviewhub/internal/service"
	"reviewhub/pkg/logger"
)

// ReportDigestTask 举报积压播报
// 周期性记录待处理举报组数量，配合日志告警用
type ReportDigestTask struct {
	ReportService *service.ReportService
	Cron          *cron.Cron
}

func NewReportDigestTask(reportSvc *service.ReportService) *ReportDigestTask {
	return &ReportDigestTask{
		ReportService: reportSvc,
		Cron:          cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *ReportDigestTask) Start() {
	// 每30分钟播报一次
	_, err := t.Cron.AddFunc("0 0/30 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.digestJob(ctx)
	})
	if err != nil {
		logger.L().Fatal("无法启动举报播报任务", zap.Error(err))
	}

	t.Cron.Start()
	logger.L().Info("举报播报任务已启动 (每30分钟一次)")
}

// Stop 停止定时任务
func (t *ReportDigestTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
	logger.L().Info("举报播报任务已停止")
}

func (t *ReportDigestTask) digestJob(ctx context.Context) {
	pending, err := t.ReportService.CountPending(ctx)
	if err != nil {
		logger.L().Error("举报积压统计失败", zap.Error(err))
		return
	}
	if pending > 0 {
		logger.L().Warn("存在待处理举报", zap.Int64("pending_groups", pending))
	}
}
