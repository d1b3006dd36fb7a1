package services

import (
	"context"
	"errors"
	"fmt"

	"TaskMinderGo/models"
	"TaskMinderGo/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StorageService 任务存储契约
// SelectedDayTasks 返回推送式的任务列表快照流，订阅方取消上下文即释放监听
type StorageService interface {
	SelectedDayTasks(ctx context.Context, userID string, dateKey string) (<-chan []models.Task, <-chan error)
	Task(ctx context.Context, taskID string) (*models.Task, error)
	AddTask(ctx context.Context, task models.Task) (string, error)
	UpdateTask(ctx context.Context, task models.Task) error
	DeleteTask(ctx context.Context, taskID string) error
}

// currentUserSource 存储层写入时注入UserID的来源
type currentUserSource interface {
	CurrentUserID() string
}

type storageService struct {
	db       *gorm.DB
	rdb      *redis.Client
	accounts currentUserSource
	logger   *zap.SugaredLogger
}

func NewStorageService(db *gorm.DB, rdb *redis.Client, accounts currentUserSource, logger *zap.SugaredLogger) StorageService {
	return &storageService{db: db, rdb: rdb, accounts: accounts, logger: logger}
}

// taskChannel 任务变更通知使用的Redis频道，按用户和日期键分片
func taskChannel(userID string, dateKey string) string {
	return fmt.Sprintf("tasks:%s:%s", userID, dateKey)
}

// SelectedDayTasks 返回指定用户在指定日期的任务快照流
// 先推送一次当前查询结果，之后每收到变更通知就重新查询并推送
// 查询失败属于终止性错误：推送到错误流后两个通道一并关闭
func (s *storageService) SelectedDayTasks(ctx context.Context, userID string, dateKey string) (<-chan []models.Task, <-chan error) {
	out := make(chan []models.Task, 1)
	errs := make(chan error, 1)

	// 未配置Redis时退化为一次性查询
	var messages <-chan *redis.Message
	var sub *redis.PubSub
	if s.rdb != nil {
		sub = s.rdb.Subscribe(ctx, taskChannel(userID, dateKey))
		messages = sub.Channel()
	}

	go func() {
		defer close(out)
		defer close(errs)
		if sub != nil {
			defer sub.Close()
		}

		snapshot, err := s.queryDayTasks(userID, dateKey)
		if err != nil {
			s.logger.Errorw("任务查询失败", "error", err, "uid", userID, "dateKey", dateKey)
			errs <- err
			return
		}
		select {
		case out <- snapshot:
		case <-ctx.Done():
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				snapshot, err := s.queryDayTasks(userID, dateKey)
				if err != nil {
					s.logger.Errorw("任务查询失败", "error", err, "uid", userID, "dateKey", dateKey)
					errs <- err
					return
				}
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, errs
}

func (s *storageService) queryDayTasks(userID string, dateKey string) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.Where("user_id = ? AND due_date = ?", userID, dateKey).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Task 按ID获取任务，不存在时返回nil
func (s *storageService) Task(ctx context.Context, taskID string) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).Where("id = ?", taskID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// AddTask 创建任务并返回分配的ID
// 调用方已认证时携带UserID，否则由当前会话身份注入；NotificationID根据任务ID派生
func (s *storageService) AddTask(ctx context.Context, task models.Task) (string, error) {
	task.ID = utils.GenerateID()
	if task.UserID == "" {
		task.UserID = s.accounts.CurrentUserID()
	}
	if task.NotificationID == 0 {
		task.NotificationID = utils.NotificationIDForTask(task.ID)
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return "", err
	}

	s.notifyDay(ctx, task.UserID, task.DueDate)
	return task.ID, nil
}

// UpdateTask 更新任务，任务必须携带有效ID
// 日期键变化时新旧两个日期的订阅都会收到通知
func (s *storageService) UpdateTask(ctx context.Context, task models.Task) error {
	if task.ID == "" {
		return fmt.Errorf("更新任务需要有效的任务ID")
	}

	var existing models.Task
	if err := s.db.WithContext(ctx).Where("id = ?", task.ID).First(&existing).Error; err != nil {
		return err
	}

	// 编辑会话不携带UserID，保留原值；提醒句柄在创建时分配一次，同样不可被清零
	task.UserID = existing.UserID
	if task.NotificationID == 0 {
		task.NotificationID = existing.NotificationID
	}

	if err := s.db.WithContext(ctx).Save(&task).Error; err != nil {
		return err
	}

	s.notifyDay(ctx, task.UserID, task.DueDate)
	if existing.DueDate != task.DueDate {
		s.notifyDay(ctx, existing.UserID, existing.DueDate)
	}
	return nil
}

// DeleteTask 按ID删除任务
func (s *storageService) DeleteTask(ctx context.Context, taskID string) error {
	var existing models.Task
	err := s.db.WithContext(ctx).Where("id = ?", taskID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", taskID).Error; err != nil {
		return err
	}

	s.notifyDay(ctx, existing.UserID, existing.DueDate)
	return nil
}

func (s *storageService) notifyDay(ctx context.Context, userID string, dateKey string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Publish(ctx, taskChannel(userID, dateKey), "changed").Err(); err != nil {
		s.logger.Errorw("任务变更通知发布失败", "error", err, "uid", userID, "dateKey", dateKey)
	}
}
