package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"reviewhub/internal/service"
	"reviewhub/pkg/logger"
)

// PostPublishTask 定时发布任务
// 把 scheduledAt 已到点的 scheduled 文章置为 published
type PostPublishTask struct {
	PostService *service.PostService
	Cron        *cron.Cron

	batchSize int
}

func NewPostPublishTask(postSvc *service.PostService) *PostPublishTask {
	return &PostPublishTask{
		PostService: postSvc,
		Cron:        cron.New(cron.WithSeconds()), // 支持秒级控制
		batchSize:   100,
	}
}

// Start 启动定时任务
func (t *PostPublishTask) Start() {
	// 首次执行，补发服务停机期间到点的文章
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.publishJob(ctx)
	}()

	// 每分钟检查一次
	_, err := t.Cron.AddFunc("0 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.publishJob(ctx)
	})
	if err != nil {
		logger.L().Fatal("无法启动定时发布任务", zap.Error(err))
	}

	t.Cron.Start()
	logger.L().Info("定时发布任务已启动 (每分钟检查一次)")
}

// Stop 停止定时任务
func (t *PostPublishTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
	logger.L().Info("定时发布任务已停止")
}

func (t *PostPublishTask) publishJob(ctx context.Context) {
	published, err := t.PostService.PublishDue(ctx, time.Now(), t.batchSize)
	if err != nil {
		logger.L().Error("定时发布失败", zap.Error(err))
		return
	}
	if published > 0 {
		logger.L().Info("定时发布完成", zap.Int("published", published))
	}
}
