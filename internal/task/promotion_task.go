package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"reviewhub/internal/service"
	"reviewhub/pkg/logger"
)

// PromotionSweepTask 促销过期扫描
// EndDate 含当天：只有过了 EndDate 当天整天才下线
type PromotionSweepTask struct {
	PromotionService *service.PromotionService
	Cron             *cron.Cron

	batchSize int
}

func NewPromotionSweepTask(promotionSvc *service.PromotionService) *PromotionSweepTask {
	return &PromotionSweepTask{
		PromotionService: promotionSvc,
		Cron:             cron.New(cron.WithSeconds()),
		batchSize:        200,
	}
}

// Start 启动定时任务
func (t *PromotionSweepTask) Start() {
	// 每小时整点扫一次
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.sweepJob(ctx)
	})
	if err != nil {
		logger.L().Fatal("无法启动促销过期扫描", zap.Error(err))
	}

	t.Cron.Start()
	logger.L().Info("促销过期扫描已启动 (每小时一次)")
}

// Stop 停止定时任务
func (t *PromotionSweepTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
	logger.L().Info("促销过期扫描已停止")
}

func (t *PromotionSweepTask) sweepJob(ctx context.Context) {
	deactivated, err := t.PromotionService.DeactivateExpired(ctx, time.Now(), t.batchSize)
	if err != nil {
		logger.L().Error("促销过期扫描失败", zap.Error(err))
		return
	}
	if deactivated > 0 {
		logger.L().Info("促销过期扫描完成", zap.Int("deactivated", deactivated))
	}
}
