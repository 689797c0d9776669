package task

import (
	"context"
	"time"

	"reviewhub/internal/service"
	"reviewhub/pkg/logger"
)

// ==================== TaskManager 定时任务管理器 ====================

// TaskManager 统一管理后台定时任务
// 管理范围：定时发布、促销过期扫描、举报播报、封禁到期解封
type TaskManager struct {
	publishTask    *PostPublishTask
	promotionTask  *PromotionSweepTask
	reportTask     *ReportDigestTask
	suspensionTask *SuspensionReleaseTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	PostService      *service.PostService
	PromotionService *service.PromotionService
	ReportService    *service.ReportService
	UserService      *service.UserService
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	PublishEnabled    bool
	PromotionEnabled  bool
	ReportEnabled     bool
	SuspensionEnabled bool
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		PublishEnabled:    true,
		PromotionEnabled:  true,
		ReportEnabled:     true,
		SuspensionEnabled: true,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{}

	if cfg.PublishEnabled && deps.PostService != nil {
		tm.publishTask = NewPostPublishTask(deps.PostService)
	}
	if cfg.PromotionEnabled && deps.PromotionService != nil {
		tm.promotionTask = NewPromotionSweepTask(deps.PromotionService)
	}
	if cfg.ReportEnabled && deps.ReportService != nil {
		tm.reportTask = NewReportDigestTask(deps.ReportService)
	}
	if cfg.SuspensionEnabled && deps.UserService != nil {
		tm.suspensionTask = NewSuspensionReleaseTask(deps.UserService)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() {
	logger.L().Info("正在启动定时任务...")

	if tm.publishTask != nil {
		tm.publishTask.Start()
	}
	if tm.promotionTask != nil {
		tm.promotionTask.Start()
	}
	if tm.reportTask != nil {
		tm.reportTask.Start()
	}
	if tm.suspensionTask != nil {
		tm.suspensionTask.Start()
	}

	logger.L().Info("定时任务已全部启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	logger.L().Info("正在停止定时任务...")

	if tm.publishTask != nil {
		tm.publishTask.Stop()
	}
	if tm.promotionTask != nil {
		tm.promotionTask.Stop()
	}
	if tm.reportTask != nil {
		tm.reportTask.Stop()
	}
	if tm.suspensionTask != nil {
		tm.suspensionTask.Stop()
	}

	logger.L().Info("定时任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerPublish 立即执行一次定时发布
func (tm *TaskManager) TriggerPublish(ctx context.Context) error {
	if tm.publishTask == nil {
		return ErrTaskDisabled
	}
	_, err := tm.publishTask.PostService.PublishDue(ctx, time.Now(), tm.publishTask.batchSize)
	return err
}

// TriggerPromotionSweep 立即执行一次促销过期扫描
func (tm *TaskManager) TriggerPromotionSweep(ctx context.Context) error {
	if tm.promotionTask == nil {
		return ErrTaskDisabled
	}
	_, err := tm.promotionTask.PromotionService.DeactivateExpired(ctx, time.Now(), tm.promotionTask.batchSize)
	return err
}

// ==================== 状态查询 ====================

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"publish":    tm.publishTask != nil,
		"promotion":  tm.promotionTask != nil,
		"report":     tm.reportTask != nil,
		"suspension": tm.suspensionTask != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
