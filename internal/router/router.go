package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"reviewhub/internal/controller"
	"reviewhub/internal/middleware"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth      *controller.AuthController
	Merchant  *controller.MerchantController
	Post      *controller.PostController
	Category  *controller.CategoryController
	Promotion *controller.PromotionController
	Review    *controller.ReviewController
	User      *controller.UserController
	Report    *controller.ReportController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 3. API 路由组
	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.ActionRateLimit(middleware.ActionLogin, 0), ctls.Auth.Login)
			auth.POST("/refresh", ctls.Auth.Refresh)
			auth.GET("/me", middleware.JWTAuth(), ctls.Auth.Me)
		}

		// 前台公开接口：评价提交、举报提交
		api.POST("/reviews", middleware.OptionalAuth(), ctls.Review.CreateReview)
		api.POST("/reports", middleware.OptionalAuth(), ctls.Report.SubmitReport)
		api.GET("/reviews/:id/comments", ctls.Review.ListComments)
		api.POST("/reviews/:id/comments", middleware.OptionalAuth(), ctls.Review.CreateComment)

		// 后台接口：JWT + 审计上下文
		admin := api.Group("", middleware.JWTAuth(), middleware.AuditContext())
		{
			// 商家管理
			merchants := admin.Group("/merchants")
			{
				merchants.GET("", ctls.Merchant.ListMerchants)
				merchants.GET("/:id", ctls.Merchant.GetMerchant)
				merchants.POST("", middleware.ActionRateLimit(middleware.ActionUpload, 0), ctls.Merchant.CreateMerchant)
				merchants.PUT("/:id", ctls.Merchant.UpdateMerchant)
				merchants.PATCH("/:id/status", ctls.Merchant.ChangeStatus)
				merchants.DELETE("/:id", ctls.Merchant.DeleteMerchant)
				merchants.POST("/bulk", ctls.Merchant.BulkAction)
			}

			// 内容管理
			posts := admin.Group("/posts")
			{
				posts.GET("", ctls.Post.ListPosts)
				posts.GET("/:id", ctls.Post.GetPost)
				posts.POST("", ctls.Post.CreatePost)
				posts.PUT("/:id", ctls.Post.UpdatePost)
				posts.DELETE("/:id", ctls.Post.DeletePost)
				posts.POST("/bulk", ctls.Post.BulkAction)
			}

			// 分类管理
			categories := admin.Group("/categories")
			{
				categories.GET("", ctls.Category.ListCategories)
				categories.GET("/:id", ctls.Category.GetCategory)
				categories.POST("", ctls.Category.CreateCategory)
				categories.PUT("/:id", ctls.Category.UpdateCategory)
				categories.DELETE("/:id", ctls.Category.DeleteCategory)
			}

			// 促销管理
			promotions := admin.Group("/promotions")
			{
				promotions.GET("", ctls.Promotion.ListPromotions)
				promotions.GET("/:id", ctls.Promotion.GetPromotion)
				promotions.POST("", ctls.Promotion.CreatePromotion)
				promotions.POST("/batch", middleware.ActionRateLimit(middleware.ActionPromotionBatch, 0), ctls.Promotion.CreateBatch)
				promotions.PUT("/:id", ctls.Promotion.UpdatePromotion)
				promotions.DELETE("/:id", ctls.Promotion.DeletePromotion)
				promotions.POST("/bulk", ctls.Promotion.BulkAction)
			}

			// 评价管理
			reviews := admin.Group("/reviews")
			{
				reviews.GET("", ctls.Review.ListReviews)
				reviews.GET("/:id", ctls.Review.GetReview)
				reviews.DELETE("/:id", ctls.Review.DeleteReview)
			}
			admin.DELETE("/comments/:id", ctls.Review.DeleteComment)

			// 用户管理：封禁解封仅限超管
			users := admin.Group("/users")
			{
				users.GET("", ctls.User.ListUsers)
				users.GET("/:id", ctls.User.GetUser)
				users.POST("", ctls.User.CreateUser)
				users.POST("/:id/suspend", middleware.RequireRole("super_admin"), ctls.User.Suspend)
				users.POST("/:id/unsuspend", middleware.RequireRole("super_admin"), ctls.User.Unsuspend)
				users.POST("/bulk", middleware.RequireRole("super_admin"), ctls.User.BulkAction)
			}

			// 举报处理
			reports := admin.Group("/reports")
			{
				reports.GET("", ctls.Report.ListGroups)
				reports.GET("/:contentType/:contentId", ctls.Report.GetGroup)
				reports.POST("/:contentType/:contentId/accept", ctls.Report.Accept)
				reports.POST("/:contentType/:contentId/reject", ctls.Report.Reject)
			}
		}
	}
}
