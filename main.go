package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TaskMinderGo/config"
	"TaskMinderGo/middleware"
	"TaskMinderGo/routes"
	"TaskMinderGo/services"
	"TaskMinderGo/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化日志
	if err := config.InitLogger(); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
		return
	}
	utils.InitJWT(conf.JWTSecret)

	// 初始化数据库
	if err := config.InitDB(conf); err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
		return
	}

	// 初始化Redis
	if err := config.InitRedis(conf); err != nil {
		log.Fatalf("无法初始化Redis: %v", err)
		return
	}

	// 组装服务
	notices := services.NewSnackbarService()
	catcher := services.NewCatcher(config.Logger, notices)
	accounts := services.NewAccountService(config.DB, config.Logger)
	storage := services.NewStorageService(config.DB, config.RedisClient, accounts, config.Logger)
	configuration := services.NewConfigurationService(config.RedisClient, config.Logger)
	preferences := services.NewPreferencesRepository(config.RedisClient, config.Logger)
	scheduler := services.NewReminderScheduler(config.Logger, nil)

	// 启动流程：拉取远程配置并确保存在已登录身份
	splash := services.NewSplashSession(accounts, configuration, catcher)
	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	splash.FetchConfiguration(startCtx)
	splash.Start(startCtx)
	startCancel()
	if splash.ShowError() {
		config.Logger.Errorw("启动时匿名账户创建失败，可通过接口重试")
	}

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.New()

	// 设置中间件
	middleware.SetupMiddleware(r)

	// 注册路由
	routes.RegisterRoutes(r, accounts, storage, configuration, preferences, scheduler)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		log.Printf("启动服务器，监听端口: %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	// 停止全部本地提醒定时器
	scheduler.Stop()

	log.Println("服务器已关闭")
}
