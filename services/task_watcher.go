package services

import (
	"context"

	"TaskMinderGo/models"

	"go.uber.org/zap"
)

// TaskWatcher 任务列表同步器
// 将（当前用户身份流 × 日期键）绑定为一条任务快照流，采用"最新者胜"策略：
// 日期键或用户身份变化时取消上一个订阅，只有最新订阅的结果会被送达下游
type TaskWatcher struct {
	storage  StorageService
	accounts AccountService
	catcher  *Catcher
	logger   *zap.SugaredLogger

	keys chan string
	out  chan []models.Task
}

// NewTaskWatcher 创建并启动任务列表同步器，ctx取消时释放全部订阅
// 订阅的终止性错误经catcher统一处理并弹出短暂提示
func NewTaskWatcher(ctx context.Context, storage StorageService, accounts AccountService, catcher *Catcher, logger *zap.SugaredLogger) *TaskWatcher {
	w := &TaskWatcher{
		storage:  storage,
		accounts: accounts,
		catcher:  catcher,
		logger:   logger,
		keys:     make(chan string, 1),
		out:      make(chan []models.Task, 1),
	}
	go w.run(ctx)
	return w
}

// SetDateKey 切换当前订阅的日期键，不阻塞调用方
// 快速连续切换时只保留最后一个键
func (w *TaskWatcher) SetDateKey(dateKey string) {
	for {
		select {
		case w.keys <- dateKey:
			return
		default:
			// 丢弃尚未被消费的旧键
			select {
			case <-w.keys:
			default:
			}
		}
	}
}

// Snapshots 任务列表快照的输出流，同步器停止时关闭
func (w *TaskWatcher) Snapshots() <-chan []models.Task {
	return w.out
}

func (w *TaskWatcher) run(ctx context.Context) {
	defer close(w.out)

	users := w.accounts.CurrentUser(ctx)

	var (
		userID     string
		dateKey    string
		generation uint64
		cancel     context.CancelFunc
		snapshots  <-chan []models.Task
		errs       <-chan error
	)

	// resubscribe 取消在途订阅并针对最新的（用户, 日期键）重新订阅
	resubscribe := func() {
		if cancel != nil {
			cancel()
			cancel = nil
			snapshots = nil
			errs = nil
		}
		generation++
		if userID == "" || dateKey == "" {
			return
		}
		subCtx, subCancel := context.WithCancel(ctx)
		cancel = subCancel
		snapshots, errs = w.storage.SelectedDayTasks(subCtx, userID, dateKey)
		w.logger.Debugw("任务订阅已切换", "uid", userID, "dateKey", dateKey, "generation", generation)
	}

	defer func() {
		if cancel != nil {
			cancel()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case identity, ok := <-users:
			if !ok {
				users = nil
				continue
			}
			if identity.UserID != userID {
				userID = identity.UserID
				resubscribe()
			}

		case key := <-w.keys:
			if key != dateKey {
				dateKey = key
				resubscribe()
			}

		case snapshot, ok := <-snapshots:
			if !ok {
				// 订阅正常终止，不在此处重试
				snapshots = nil
				w.logger.Debugw("任务订阅已终止", "uid", userID, "dateKey", dateKey)
				continue
			}
			w.deliver(ctx, snapshot)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			// 终止性错误交给统一的错误处理，向用户弹出短暂提示
			w.catcher.Handle(err, true)
		}
	}
}

// deliver 推送快照到输出流，消费方尚未取走旧快照时用新快照替换它
func (w *TaskWatcher) deliver(ctx context.Context, snapshot []models.Task) {
	for {
		select {
		case <-ctx.Done():
			return
		case w.out <- snapshot:
			return
		default:
			select {
			case <-w.out:
			default:
			}
		}
	}
}
