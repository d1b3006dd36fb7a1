package services

import (
	"context"
	"sync"
)

// SplashSession 启动会话
// 负责拉取远程配置和确保存在已登录身份（没有则创建匿名账户）
// 匿名账户创建失败会进入持久错误状态，提供手动重试，区别于短暂提示
type SplashSession struct {
	accounts AccountService
	configs  ConfigurationService
	catcher  *Catcher

	mu           sync.Mutex
	accountReady bool
	showError    bool
}

func NewSplashSession(accounts AccountService, configs ConfigurationService, catcher *Catcher) *SplashSession {
	return &SplashSession{
		accounts: accounts,
		configs:  configs,
		catcher:  catcher,
	}
}

// FetchConfiguration 拉取远程配置
// 失败只记录日志，应用继续使用缓存/默认标志值，不阻塞启动
func (s *SplashSession) FetchConfiguration(ctx context.Context) {
	if _, err := s.configs.FetchConfiguration(ctx); err != nil {
		s.catcher.Handle(err, false)
	}
}

// Start 启动应用：已登录则直接就绪，否则创建匿名账户
func (s *SplashSession) Start(ctx context.Context) {
	s.mu.Lock()
	s.showError = false
	s.mu.Unlock()

	if s.accounts.IsUserSignedIn() {
		s.mu.Lock()
		s.accountReady = true
		s.mu.Unlock()
		return
	}

	s.createAnonymousAccount(ctx)
}

// Retry 手动重试启动流程
func (s *SplashSession) Retry(ctx context.Context) {
	s.Start(ctx)
}

func (s *SplashSession) createAnonymousAccount(ctx context.Context) {
	if err := s.accounts.CreateAnonymousAccount(ctx); err != nil {
		s.mu.Lock()
		s.showError = true
		s.mu.Unlock()
		// 启动关键路径失败走持久错误展示，不弹短暂提示
		s.catcher.Handle(err, false)
		return
	}

	s.mu.Lock()
	s.accountReady = true
	s.mu.Unlock()
}

// IsAccountReady 账户是否已就绪
func (s *SplashSession) IsAccountReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountReady
}

// ShowError 是否处于持久错误状态（阻塞前进导航，等待重试）
func (s *SplashSession) ShowError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showError
}
