package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"reviewhub/internal/service"
	"reviewhub/pkg/logger"
)

// SuspensionReleaseTask 封禁到期解封
// SuspendedUntil 过期的用户自动恢复 active，永久封禁不受影响
type SuspensionReleaseTask struct {
	UserService *service.UserService
	Cron        *cron.Cron

	batchSize int
}

func NewSuspensionReleaseTask(userSvc *service.UserService) *SuspensionReleaseTask {
	return &SuspensionReleaseTask{
		UserService: userSvc,
		Cron:        cron.New(cron.WithSeconds()),
		batchSize:   200,
	}
}

// Start 启动定时任务
func (t *SuspensionReleaseTask) Start() {
	// 每10分钟检查一次
	_, err := t.Cron.AddFunc("0 0/10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.releaseJob(ctx)
	})
	if err != nil {
		logger.L().Fatal("无法启动解封任务", zap.Error(err))
	}

	t.Cron.Start()
	logger.L().Info("解封任务已启动 (每10分钟检查一次)")
}

// Stop 停止定时任务
func (t *SuspensionReleaseTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
	logger.L().Info("解封任务已停止")
}

func (t *SuspensionReleaseTask) releaseJob(ctx context.Context) {
	released, err := t.UserService.ReleaseExpiredSuspensions(ctx, time.Now(), t.batchSize)
	if err != nil {
		logger.L().Error("到期解封失败", zap.Error(err))
		return
	}
	if released > 0 {
		logger.L().Info("到期解封完成", zap.Int("released", released))
	}
}
