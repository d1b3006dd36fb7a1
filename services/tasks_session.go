package services

import (
	"context"

	"TaskMinderGo/models"

	"go.uber.org/zap"
)

// TasksSession 任务列表界面的会话
// 持有日历选择状态和任务列表同步器，并显式把日历变更传播给同步器，
// 日历自身不感知任何订阅方；会话结束时所有订阅无条件释放
type TasksSession struct {
	Calendar *CalendarSelection

	watcher   *TaskWatcher
	storage   StorageService
	scheduler *ReminderScheduler
	catcher   *Catcher
	cancel    context.CancelFunc
}

// NewTasksSession 创建任务列表会话并立即按今天的日期键订阅
func NewTasksSession(ctx context.Context, storage StorageService, accounts AccountService, scheduler *ReminderScheduler, catcher *Catcher, logger *zap.SugaredLogger) *TasksSession {
	sessionCtx, cancel := context.WithCancel(ctx)

	s := &TasksSession{
		Calendar:  NewCalendarSelection(),
		watcher:   NewTaskWatcher(sessionCtx, storage, accounts, catcher, logger),
		storage:   storage,
		scheduler: scheduler,
		catcher:   catcher,
		cancel:    cancel,
	}
	s.watcher.SetDateKey(s.Calendar.DateKey())
	return s
}

// Tasks 当前选择日期的任务快照流
func (s *TasksSession) Tasks() <-chan []models.Task {
	return s.watcher.Snapshots()
}

// SetYear 设置年份
func (s *TasksSession) SetYear(year int) {
	s.Calendar.SetYear(year)
	s.watcher.SetDateKey(s.Calendar.DateKey())
}

// NextMonth 切换到下一个月
func (s *TasksSession) NextMonth() {
	s.Calendar.NextMonth()
	s.watcher.SetDateKey(s.Calendar.DateKey())
}

// PreviousMonth 切换到上一个月
func (s *TasksSession) PreviousMonth() {
	s.Calendar.PreviousMonth()
	s.watcher.SetDateKey(s.Calendar.DateKey())
}

// SetDayInMonth 设置选中的日
func (s *TasksSession) SetDayInMonth(day string) {
	s.Calendar.SetDayInMonth(day)
	s.watcher.SetDateKey(s.Calendar.DateKey())
}

// FlagTask 切换任务的完成状态，通过一次更新表达，不是独立原语
func (s *TasksSession) FlagTask(ctx context.Context, task models.Task) {
	flipped := task
	flipped.Completed = !task.Completed
	s.catcher.Handle(s.storage.UpdateTask(ctx, flipped), true)
}

// DeleteTask 删除任务并取消其本地提醒
func (s *TasksSession) DeleteTask(ctx context.Context, task models.Task) {
	if err := s.storage.DeleteTask(ctx, task.ID); err != nil {
		s.catcher.Handle(err, true)
		return
	}
	if s.scheduler != nil {
		s.scheduler.Cancel(task.NotificationID)
	}
}

// Close 结束会话，释放任务流和身份流订阅
func (s *TasksSession) Close() {
	s.cancel()
}
