package services

import (
	"go.uber.org/zap"
)

// Catcher 异步操作入口的统一错误处理：总是记录日志，按需弹出短暂提示
type Catcher struct {
	Logger  *zap.SugaredLogger
	Notices Notifier
}

func NewCatcher(logger *zap.SugaredLogger, notices Notifier) *Catcher {
	return &Catcher{Logger: logger, Notices: notices}
}

// Handle 处理一个已发生的错误，nil直接忽略
func (c *Catcher) Handle(err error, notice bool) {
	if err == nil {
		return
	}
	if notice && c.Notices != nil {
		c.Notices.Show(err.Error())
	}
	if c.Logger != nil {
		c.Logger.Errorw("后台任务执行失败", "error", err)
	}
}

// Go 在新协程中执行操作，错误统一经过Handle
func (c *Catcher) Go(notice bool, fn func() error) {
	go func() {
		c.Handle(fn(), notice)
	}()
}
