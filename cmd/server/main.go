// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset-track-go/internal/config"
	"asset-track-go/internal/handler"
	"asset-track-go/internal/middleware"
	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/internal/service"
	"asset-track-go/pkg/database"
	"asset-track-go/pkg/kafka"
	"asset-track-go/pkg/log"
	"asset-track-go/pkg/storage"
	"asset-track-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库和 Redis
	database.InitMySQL(cfg.Database.MySQL.DSN)
	if err := database.DB.AutoMigrate(
		&model.User{},
		&model.Server{},
		&model.PimServer{},
		&model.PimUser{},
		&model.Tracker{},
		&model.TrackerHeader{},
		&model.TrackerRow{},
		&model.ActivityLog{},
	); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)

	// 可选的外部依赖：对象存储用于留存导入文件，Kafka 用于审计事件外发
	if cfg.MinIO.Enabled {
		storage.InitMinIO(cfg.MinIO)
	}
	if cfg.Kafka.Enabled {
		kafka.InitProducer(cfg.Kafka)
	}

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	serverRepo := repository.NewServerRepository(database.DB)
	pimServerRepo := repository.NewPimServerRepository(database.DB)
	pimUserRepo := repository.NewPimUserRepository(database.DB)
	trackerRepo := repository.NewTrackerRepository(database.DB)
	headerRepo := repository.NewTrackerHeaderRepository(database.DB)
	rowRepo := repository.NewTrackerRowRepository(database.DB)
	activityRepo := repository.NewActivityLogRepository(database.DB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	activityService := service.NewActivityService(activityRepo)
	userService := service.NewUserService(userRepo, jwtManager)
	adminService := service.NewAdminService(userRepo, activityService)
	serverService := service.NewServerService(serverRepo, activityService)
	pimService := service.NewPimService(pimServerRepo, pimUserRepo, activityService)
	trackerService := service.NewTrackerService(trackerRepo, headerRepo, rowRepo, activityService)

	// 6. 种子管理员账号（仅在系统中不存在管理员时创建）
	if err := adminService.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatalf("初始化管理员账号失败: %v", err)
	}

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService, activityService)
	serverHandler := handler.NewServerHandler(serverService)
	pimHandler := handler.NewPimHandler(pimService)
	trackerHandler := handler.NewTrackerHandler(trackerService)

	authRequired := middleware.AuthMiddleware(jwtManager, userService)
	adminRequired := middleware.AdminAuthMiddleware()

	// 8. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// 健康检查，公开访问
		apiV1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "UP"})
		})

		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refreshToken", authHandler.RefreshToken)
			auth.POST("/logout", authRequired, authHandler.Logout)
		}

		// 当前用户路由组，需要认证
		users := apiV1.Group("/users")
		users.Use(authRequired)
		{
			users.GET("/me", userHandler.GetProfile)
			users.PUT("/me/theme", userHandler.SetTheme)
		}

		// 服务器资产清单。只读角色可查询和导出，变更操作仅限管理员
		servers := apiV1.Group("/servers")
		servers.Use(authRequired)
		{
			servers.GET("", serverHandler.List)
			servers.GET("/:id", serverHandler.Get)
			servers.GET("/export", serverHandler.Export)
			servers.GET("/template", serverHandler.Template)
			servers.POST("", adminRequired, serverHandler.Create)
			servers.PUT("/:id", adminRequired, serverHandler.Update)
			servers.DELETE("/:id", adminRequired, serverHandler.Delete)
			servers.POST("/import", adminRequired, serverHandler.Import)
		}

		// PIM 服务器清单
		pimServers := apiV1.Group("/pim/servers")
		pimServers.Use(authRequired)
		{
			pimServers.GET("", pimHandler.ListServers)
			pimServers.GET("/:id", pimHandler.GetServer)
			pimServers.GET("/export", pimHandler.ExportServers)
			pimServers.GET("/template", pimHandler.ServerTemplate)
			pimServers.POST("", adminRequired, pimHandler.CreateServer)
			pimServers.PUT("/:id", adminRequired, pimHandler.UpdateServer)
			pimServers.DELETE("/:id", adminRequired, pimHandler.DeleteServer)
			pimServers.POST("/import", adminRequired, pimHandler.ImportServers)
		}

		// PIM 用户清单
		pimUsers := apiV1.Group("/pim/users")
		pimUsers.Use(authRequired)
		{
			pimUsers.GET("", pimHandler.ListUsers)
			pimUsers.GET("/:id", pimHandler.GetUser)
			pimUsers.GET("/export", pimHandler.ExportUsers)
			pimUsers.GET("/template", pimHandler.UserTemplate)
			pimUsers.POST("", adminRequired, pimHandler.CreateUser)
			pimUsers.PUT("/:id", adminRequired, pimHandler.UpdateUser)
			pimUsers.DELETE("/:id", adminRequired, pimHandler.DeleteUser)
			pimUsers.POST("/import", adminRequired, pimHandler.ImportUsers)
		}

		// Tracker 层级、列定义与行数据
		trackers := apiV1.Group("/trackers")
		trackers.Use(authRequired)
		{
			trackers.GET("", trackerHandler.List)
			trackers.GET("/parent/:parentId", trackerHandler.ListChildren)
			trackers.GET("/:id", trackerHandler.Get)
			trackers.POST("", adminRequired, trackerHandler.Create)
			trackers.PUT("/:id", adminRequired, trackerHandler.Update)
			trackers.DELETE("/:id", adminRequired, trackerHandler.Delete)

			trackers.GET("/:id/headers", trackerHandler.ListHeaders)
			trackers.PUT("/:id/headers", adminRequired, trackerHandler.UpsertHeaders)

			trackers.GET("/:id/rows", trackerHandler.ListRows)
			trackers.POST("/:id/rows", adminRequired, trackerHandler.CreateRow)
			trackers.PUT("/:id/rows/:rowId", adminRequired, trackerHandler.UpdateRow)
			trackers.DELETE("/:id/rows/:rowId", adminRequired, trackerHandler.DeleteRow)

			trackers.POST("/:id/import", adminRequired, trackerHandler.Import)
			trackers.GET("/:id/export", trackerHandler.Export)
			trackers.GET("/:id/template", trackerHandler.Template)
		}

		// 管理员路由组，需要同时通过认证和管理员授权两个中间件
		admin := apiV1.Group("/admin")
		admin.Use(authRequired, adminRequired)
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.GET("/activity-logs", adminHandler.ListActivityLogs)
		}
	}

	// 9. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
