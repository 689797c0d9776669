package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reviewhub/internal/controller"
	"reviewhub/internal/middleware"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/router"
	"reviewhub/internal/service"
	"reviewhub/internal/task"
	"reviewhub/pkg/config"
	"reviewhub/pkg/database"
	"reviewhub/pkg/logger"
)

func main() {
	// 1. 加载配置与日志
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Environment); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer logger.Sync()

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
		Issuer:          cfg.JWT.Issuer,
	})

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动定时任务
	tm := initTasks(deps)
	defer tm.Stop()

	// 5. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers)

	// 6. 启动服务
	startServer(cfg, r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Merchant  repository.MerchantRepository
	Category  repository.CategoryRepository
	Post      repository.PostRepository
	Promotion repository.PromotionRepository
	Review    repository.ReviewRepository
	User      repository.UserRepository
	Report    repository.ReportRepository
}

// Services 服务集合
type Services struct {
	Auth       *service.AuthService
	Merchant   *service.MerchantService
	Category   *service.CategoryService
	Post       *service.PostService
	Promotion  *service.PromotionService
	Review     *service.ReviewService
	User       *service.UserService
	Report     *service.ReportService
	Storage    *service.StorageService
	Moderation *service.ModerationService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	opts := database.DefaultOptions()
	opts.MaxIdleConns = cfg.DB.MaxIdleConns
	opts.MaxOpenConns = cfg.DB.MaxOpenConns
	opts.ConnMaxLifetime = cfg.DB.ConnMaxLifetime

	db, err := database.InitDB(cfg.DB.DSN(), opts,
		// 目录
		&model.Category{},
		// 商家
		&model.Merchant{}, &model.Promotion{},
		// 内容
		&model.Post{},
		// 社区
		&model.Review{}, &model.Comment{}, &model.Report{},
		// 用户
		&model.User{},
	)
	if err != nil {
		logger.L().Fatal("数据库初始化失败", zap.Error(err))
	}

	// 审计字段回调，配合 AuditContext 中间件
	middleware.RegisterAuditCallbacks(db)

	return db
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 存储 & AI 服务 --------
	storageSvc := initStorageService(cfg)
	var moderationSvc *service.ModerationService
	if cfg.AI.APIKey != "" {
		moderationSvc = service.NewModerationService(cfg.AI.APIKey, cfg.AI.ModelName)
	}

	// -------- 业务服务 --------
	services := &Services{
		Storage:    storageSvc,
		Moderation: moderationSvc,
	}
	services.Auth = service.NewAuthService(repos.User)
	services.Category = service.NewCategoryService(repos.Category)
	services.Merchant = service.NewMerchantService(repos.Merchant, repos.Category)
	services.Post = service.NewPostService(repos.Post)
	services.Promotion = service.NewPromotionService(repos.Promotion, repos.Merchant)
	services.Review = service.NewReviewService(repos.Review, repos.Merchant)
	services.User = service.NewUserService(repos.User)
	services.Report = service.NewReportService(repos.Report, services.Review, moderationSvc)

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Merchant:  repository.NewMerchantRepository(db),
		Category:  repository.NewCategoryRepository(db),
		Post:      repository.NewPostRepository(db),
		Promotion: repository.NewPromotionRepository(db),
		Review:    repository.NewReviewRepository(db),
		User:      repository.NewUserRepository(db),
		Report:    repository.NewReportRepository(db),
	}
}

// initStorageService 初始化存储服务
func initStorageService(cfg *config.Config) *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  cfg.Storage.BasePath,
	})
	if err != nil {
		logger.L().Warn("存储服务初始化失败", zap.Error(err))
		return nil
	}
	return storageSvc
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Auth:      controller.NewAuthController(svc.Auth),
		Merchant:  controller.NewMerchantController(svc.Merchant, svc.Storage),
		Post:      controller.NewPostController(svc.Post),
		Category:  controller.NewCategoryController(svc.Category),
		Promotion: controller.NewPromotionController(svc.Promotion),
		Review:    controller.NewReviewController(svc.Review),
		User:      controller.NewUserController(svc.User),
		Report:    controller.NewReportController(svc.Report),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) *task.TaskManager {
	tm := task.NewTaskManager(&task.TaskManagerDeps{
		PostService:      deps.Services.Post,
		PromotionService: deps.Services.Promotion,
		ReportService:    deps.Services.Report,
		UserService:      deps.Services.User,
	}, nil)
	tm.Start()
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg *config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logger.L().Info("服务启动", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Fatal("服务强制关闭", zap.Error(err))
	}

	logger.L().Info("服务已退出")
}
