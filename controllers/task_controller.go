package controllers

import (
	"io"
	"net/http"

	"TaskMinderGo/config"
	"TaskMinderGo/models"
	"TaskMinderGo/services"

	"github.com/gin-gonic/gin"
)

// TaskController 任务控制器
type TaskController struct {
	storage   services.StorageService
	scheduler *services.ReminderScheduler
}

func NewTaskController(storage services.StorageService, scheduler *services.ReminderScheduler) *TaskController {
	return &TaskController{storage: storage, scheduler: scheduler}
}

// ListTasks 获取指定日期的任务列表（一次性查询）
func (tc *TaskController) ListTasks(c *gin.Context) {
	uid := c.GetString("uid")
	dateKey := c.Query("date")
	if dateKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少date参数"})
		return
	}

	// 快照流的第一个元素即当前查询结果
	snapshots, errs := tc.storage.SelectedDayTasks(c.Request.Context(), uid, dateKey)
	select {
	case snapshot, ok := <-snapshots:
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "任务查询失败"})
			return
		}
		c.JSON(http.StatusOK, models.TaskListResponse{DateKey: dateKey, Tasks: snapshot})
	case err := <-errs:
		if err != nil {
			config.Logger.Errorw("任务查询失败", "error", err, "uid", uid, "dateKey", dateKey)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务查询失败"})
	}
}

// StreamTasks 以SSE推送指定日期的任务快照流
// 每次任务变更推送一帧完整列表，客户端断开即释放订阅
func (tc *TaskController) StreamTasks(c *gin.Context) {
	uid := c.GetString("uid")
	dateKey := c.Query("date")
	if dateKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少date参数"})
		return
	}

	snapshots, errs := tc.storage.SelectedDayTasks(c.Request.Context(), uid, dateKey)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("tasks", models.TaskListResponse{DateKey: dateKey, Tasks: snapshot})
			return true
		case err := <-errs:
			if err != nil {
				config.Logger.Errorw("任务查询失败", "error", err, "uid", uid, "dateKey", dateKey)
			}
			return false
		}
	})
}

// GetTask 按ID获取任务
func (tc *TaskController) GetTask(c *gin.Context) {
	task, err := tc.storage.Task(c.Request.Context(), c.Param("id"))
	if err != nil {
		config.Logger.Errorw("任务获取失败", "error", err, "taskID", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务获取失败"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask 创建任务，UserID由存储层注入
func (tc *TaskController) CreateTask(c *gin.Context) {
	var req models.SaveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := req.ToTask()
	task.ID = ""
	// 归属以请求认证的身份为准，与进程内的当前身份无关
	task.UserID = c.GetString("uid")
	id, err := tc.storage.AddTask(c.Request.Context(), task)
	if err != nil {
		config.Logger.Errorw("任务创建失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务创建失败"})
		return
	}

	saved, err := tc.storage.Task(c.Request.Context(), id)
	if err != nil || saved == nil {
		config.Logger.Errorw("任务回读失败", "error", err, "taskID", id)
		c.JSON(http.StatusOK, gin.H{"id": id})
		return
	}

	tc.scheduler.Schedule(*saved)
	c.JSON(http.StatusOK, saved)
}

// UpdateTask 更新任务
func (tc *TaskController) UpdateTask(c *gin.Context) {
	var req models.SaveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := req.ToTask()
	task.ID = c.Param("id")
	if err := tc.storage.UpdateTask(c.Request.Context(), task); err != nil {
		config.Logger.Errorw("任务更新失败", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务更新失败"})
		return
	}

	// 提醒跟随最新的到期时间和开关状态，句柄取存储层保留的值
	saved, err := tc.storage.Task(c.Request.Context(), task.ID)
	if err != nil || saved == nil {
		config.Logger.Errorw("任务回读失败", "error", err, "taskID", task.ID)
		c.JSON(http.StatusOK, gin.H{"message": "任务已更新"})
		return
	}
	if saved.Alert {
		tc.scheduler.Schedule(*saved)
	} else {
		tc.scheduler.Cancel(saved.NotificationID)
	}

	c.JSON(http.StatusOK, saved)
}

// FlagTask 切换任务完成状态
// 通过一次更新表达，不是独立的存储原语
func (tc *TaskController) FlagTask(c *gin.Context) {
	task, err := tc.storage.Task(c.Request.Context(), c.Param("id"))
	if err != nil {
		config.Logger.Errorw("任务获取失败", "error", err, "taskID", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务获取失败"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		return
	}

	task.Completed = !task.Completed
	if err := tc.storage.UpdateTask(c.Request.Context(), *task); err != nil {
		config.Logger.Errorw("任务更新失败", "error", err, "taskID", task.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务更新失败"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask 删除任务并取消其本地提醒
func (tc *TaskController) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	task, err := tc.storage.Task(c.Request.Context(), taskID)
	if err != nil {
		config.Logger.Errorw("任务获取失败", "error", err, "taskID", taskID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务删除失败"})
		return
	}

	if err := tc.storage.DeleteTask(c.Request.Context(), taskID); err != nil {
		config.Logger.Errorw("任务删除失败", "error", err, "taskID", taskID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "任务删除失败"})
		return
	}

	if task != nil {
		tc.scheduler.Cancel(task.NotificationID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "任务已删除"})
}
