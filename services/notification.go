package services

import (
	"sync"
	"time"

	"TaskMinderGo/models"
	"TaskMinderGo/utils"

	"go.uber.org/zap"
)

// 提醒触发时展示的固定标题，正文为任务标题
const reminderTitle = "任务提醒"

// ReminderScheduler 本地提醒调度器
// 按NotificationID为每个开启提醒的任务注册一个到期定时器
type ReminderScheduler struct {
	logger *zap.SugaredLogger
	fire   func(task models.Task)

	mu     sync.Mutex
	timers map[int]*time.Timer
}

// NewReminderScheduler 创建提醒调度器，fire为nil时触发动作为记录日志
func NewReminderScheduler(logger *zap.SugaredLogger, fire func(task models.Task)) *ReminderScheduler {
	r := &ReminderScheduler{
		logger: logger,
		fire:   fire,
		timers: make(map[int]*time.Timer),
	}
	if r.fire == nil {
		r.fire = func(task models.Task) {
			logger.Infow("提醒已触发",
				"title", reminderTitle,
				"body", task.Title,
				"notificationID", task.NotificationID,
			)
		}
	}
	return r
}

// Schedule 为任务注册到期提醒
// 未开启提醒或到期时间已过/无法解析时不注册；同一句柄重复注册会先取消旧的
func (r *ReminderScheduler) Schedule(task models.Task) {
	if !task.Alert {
		return
	}

	millis := utils.ConvertDateTimeToMillis(task.DueDate, task.DueTime)
	if millis == 0 {
		r.logger.Errorw("提醒时间解析失败", "dueDate", task.DueDate, "dueTime", task.DueTime)
		return
	}
	delay := time.Until(time.UnixMilli(millis))
	if delay <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.timers[task.NotificationID]; ok {
		old.Stop()
	}

	id := task.NotificationID
	r.timers[id] = time.AfterFunc(delay, func() {
		r.mu.Lock()
		delete(r.timers, id)
		r.mu.Unlock()
		r.fire(task)
	})

	r.logger.Debugw("提醒已调度", "notificationID", id, "fireAt", time.UnixMilli(millis))
}

// Cancel 取消指定句柄的提醒
func (r *ReminderScheduler) Cancel(notificationID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if timer, ok := r.timers[notificationID]; ok {
		timer.Stop()
		delete(r.timers, notificationID)
	}
}

// Pending 返回当前已注册的提醒数量
func (r *ReminderScheduler) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Stop 取消全部提醒，进程关闭时调用
func (r *ReminderScheduler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, timer := range r.timers {
		timer.Stop()
		delete(r.timers, id)
	}
}
