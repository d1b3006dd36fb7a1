package routes

import (
	"TaskMinderGo/controllers"
	"TaskMinderGo/middleware"
	"TaskMinderGo/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	accounts services.AccountService,
	storage services.StorageService,
	configs services.ConfigurationService,
	prefs services.PreferencesRepository,
	scheduler *services.ReminderScheduler,
) {
	authController := controllers.NewAuthController(accounts)
	taskController := controllers.NewTaskController(storage, scheduler)
	themeController := controllers.NewThemeController(prefs)
	configController := controllers.NewConfigController(configs)

	// 公开路由（无需认证）
	public := r.Group("/api/v1")
	{
		public.POST("/auth/anonymous", authController.CreateAnonymousAccount)
		public.POST("/auth/login", authController.Login)
	}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		private.POST("/auth/link", authController.LinkAccount)
		private.POST("/auth/signout", authController.SignOut)
		private.DELETE("/auth/account", authController.DeleteAccount)
		private.GET("/auth/me", authController.CurrentUser)

		// 任务相关接口
		private.GET("/tasks", taskController.ListTasks)
		private.GET("/tasks/stream", taskController.StreamTasks)
		private.GET("/tasks/:id", taskController.GetTask)
		private.POST("/tasks", taskController.CreateTask)
		private.PUT("/tasks/:id", taskController.UpdateTask)
		private.PATCH("/tasks/:id/flag", taskController.FlagTask)
		private.DELETE("/tasks/:id", taskController.DeleteTask)

		// 主题与远程配置
		private.GET("/theme", themeController.GetTheme)
		private.PUT("/theme", themeController.UpdateTheme)
		private.GET("/config", configController.GetConfig)
		private.POST("/config/refresh", configController.RefreshConfig)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
