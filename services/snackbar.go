package services

import (
	"context"
	"sync"
)

// Notifier 短暂提示的发布接口
// 原实现是一个进程级全局队列，这里改为显式注入，便于测试替换
type Notifier interface {
	Show(message string)
}

// SnackbarService 短暂提示队列，消息按先进先出逐条消费
type SnackbarService struct {
	mu     sync.Mutex
	queue  []string
	signal chan struct{}
}

func NewSnackbarService() *SnackbarService {
	return &SnackbarService{
		signal: make(chan struct{}, 1),
	}
}

// Show 将提示消息加入队列
func (s *SnackbarService) Show(message string) {
	s.mu.Lock()
	s.queue = append(s.queue, message)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// Next 取出下一条提示消息，队列为空时阻塞直到有新消息或上下文取消
func (s *SnackbarService) Next(ctx context.Context) (string, bool) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			message := s.queue[0]
			s.queue = s.queue[1:]
			if len(s.queue) > 0 {
				select {
				case s.signal <- struct{}{}:
				default:
				}
			}
			s.mu.Unlock()
			return message, true
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return "", false
		case <-s.signal:
		}
	}
}

// Pending 返回当前排队的消息数量
func (s *SnackbarService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// NopNotifier 不做任何事的提示实现，测试用
type NopNotifier struct{}

func (NopNotifier) Show(string) {}
