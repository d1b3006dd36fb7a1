package services

import (
	"context"
	"strings"
	"sync"

	"TaskMinderGo/models"
	"TaskMinderGo/utils"
)

// EditState 编辑会话状态
type EditState int

const (
	EditStateLoading EditState = iota
	EditStateEditing
	EditStateSaving
	EditStateSaved
)

func (s EditState) String() string {
	switch s {
	case EditStateLoading:
		return "Loading"
	case EditStateSaving:
		return "Saving"
	case EditStateSaved:
		return "Saved"
	default:
		return "Editing"
	}
}

// EditTaskSession 单个任务的编辑会话
// 管理草稿、保存门槛和创建/更新的提交，加载和保存失败回到Editing并弹出提示
type EditTaskSession struct {
	storage StorageService
	configs ConfigurationService
	catcher *Catcher

	mu                 sync.Mutex
	taskID             string
	draft              models.Task
	state              EditState
	alertOptionVisible bool
}

// NewEditTaskSession 创建编辑会话
// taskID非空表示编辑已有任务，从Loading开始；否则直接以空白草稿进入Editing
func NewEditTaskSession(storage StorageService, configs ConfigurationService, catcher *Catcher, taskID string) *EditTaskSession {
	state := EditStateEditing
	if taskID != "" {
		state = EditStateLoading
	}
	return &EditTaskSession{
		storage:            storage,
		configs:            configs,
		catcher:            catcher,
		taskID:             taskID,
		state:              state,
		alertOptionVisible: true,
	}
}

// Load 拉取待编辑的任务
// 任务不存在时静默回退为空白草稿；拉取出错时回到Editing并弹出提示
func (s *EditTaskSession) Load(ctx context.Context) {
	s.mu.Lock()
	taskID := s.taskID
	s.mu.Unlock()
	if taskID == "" {
		return
	}

	task, err := s.storage.Task(ctx, taskID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.catcher.Handle(err, true)
		s.state = EditStateEditing
		return
	}
	if task != nil {
		s.draft = *task
	}
	s.state = EditStateEditing
}

// RefreshAlertEnabled 重新读取远程"展示提醒开关"标志
// 与草稿自身的Alert布尔值无关，会话可见时由调用方触发
func (s *EditTaskSession) RefreshAlertEnabled() {
	visible := s.configs.IsShowAlertOptionSwitch()
	s.mu.Lock()
	s.alertOptionVisible = visible
	s.mu.Unlock()
}

func (s *EditTaskSession) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Title = title
}

func (s *EditTaskSession) SetDescription(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Description = description
}

func (s *EditTaskSession) SetPriority(priority string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Priority = priority
}

func (s *EditTaskSession) SetAlert(alert bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Alert = alert
}

// SetDueDateMillis 用毫秒时间戳设置到期日期，按本地日历格式化为 "MM/dd/yyyy"
func (s *EditTaskSession) SetDueDateMillis(millis int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.DueDate = utils.ConvertMillisToDate(millis)
}

// SetDueTime 用时分设置到期时间，格式化为补零的 "HH:mm"
func (s *EditTaskSession) SetDueTime(hour int, minute int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.DueTime = utils.ClockPattern(hour) + ":" + utils.ClockPattern(minute)
}

// CanSave 保存门槛：标题、描述、到期日期均非空
// 每次草稿变更后重新求值
func (s *EditTaskSession) CanSave() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(s.draft.Title) != "" &&
		strings.TrimSpace(s.draft.Description) != "" &&
		strings.TrimSpace(s.draft.DueDate) != ""
}

// Save 提交草稿：ID为空时创建（存储层注入UserID），否则按原样更新
// 失败时回到Editing并弹出提示，成功后进入Saved终态
func (s *EditTaskSession) Save(ctx context.Context) {
	if !s.CanSave() {
		return
	}

	s.mu.Lock()
	s.state = EditStateSaving
	draft := s.draft
	s.mu.Unlock()

	var err error
	if draft.IsNew() {
		var id string
		id, err = s.storage.AddTask(ctx, draft)
		if err == nil {
			s.mu.Lock()
			s.draft.ID = id
			s.mu.Unlock()
		}
	} else {
		err = s.storage.UpdateTask(ctx, draft)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.catcher.Handle(err, true)
		s.state = EditStateEditing
		return
	}
	s.state = EditStateSaved
}

// Draft 返回当前草稿的副本
func (s *EditTaskSession) Draft() models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// State 返回当前会话状态
func (s *EditTaskSession) State() EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAlertOptionVisible 提醒开关是否展示
func (s *EditTaskSession) IsAlertOptionVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alertOptionVisible
}

// IsTaskSaved 会话是否已完成保存
func (s *EditTaskSession) IsTaskSaved() bool {
	return s.State() == EditStateSaved
}
