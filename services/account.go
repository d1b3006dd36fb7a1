package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"TaskMinderGo/models"
	"TaskMinderGo/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService 账户契约：认证、匿名账户、绑定、删除和退出登录
// CurrentUser 返回当前身份的实时流，订阅时立即收到当前值
type AccountService interface {
	CurrentUser(ctx context.Context) <-chan models.Identity
	CurrentUserID() string
	IsUserSignedIn() bool
	Authenticate(ctx context.Context, email string, password string) error
	CreateAnonymousAccount(ctx context.Context) error
	LinkAccount(ctx context.Context, email string, password string) error
	DeleteAccount(ctx context.Context) error
	SignOut(ctx context.Context) error
}

type accountService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger

	mu      sync.Mutex
	current models.Identity
	subs    map[int]chan models.Identity
	nextSub int
}

func NewAccountService(db *gorm.DB, logger *zap.SugaredLogger) AccountService {
	return &accountService{
		db:     db,
		logger: logger,
		subs:   make(map[int]chan models.Identity),
	}
}

// CurrentUser 订阅当前用户身份流，上下文取消时自动退订
func (s *accountService) CurrentUser(ctx context.Context) <-chan models.Identity {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan models.Identity, 8)
	s.subs[id] = ch
	// 与认证状态监听器一致：注册时立即收到当前身份
	ch <- s.current
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

func (s *accountService) CurrentUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.UserID
}

func (s *accountService) IsUserSignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.SignedIn()
}

// setCurrent 更新当前身份并向所有订阅者广播
func (s *accountService) setCurrent(identity models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = identity
	for _, ch := range s.subs {
		select {
		case ch <- identity:
		default:
			// 订阅者消费过慢时丢弃本次通知，下次变更会再推送最新身份
		}
	}
}

// Authenticate 邮箱密码登录
func (s *accountService) Authenticate(ctx context.Context, email string, password string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ? AND is_anonymous = ?", email, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &utils.AuthenticationError{Message: "邮箱或密码错误"}
		}
		return &utils.AuthenticationError{Message: "登录过程中发生错误", Cause: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return &utils.AuthenticationError{Message: "邮箱或密码错误", Cause: err}
	}

	s.setCurrent(models.Identity{UserID: user.ID, IsAnonymous: false})
	s.logger.Infow("用户登录成功", "userID", user.ID)
	return nil
}

// CreateAnonymousAccount 创建匿名账户并切换为当前身份
func (s *accountService) CreateAnonymousAccount(ctx context.Context) error {
	user := models.User{
		ID:          utils.GenerateID(),
		IsAnonymous: true,
		CreatedAt:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return &utils.AccountCreationError{Message: "匿名账户创建失败", Cause: err}
	}

	s.setCurrent(models.Identity{UserID: user.ID, IsAnonymous: true})
	s.logger.Infow("匿名账户创建成功", "userID", user.ID)
	return nil
}

// LinkAccount 将邮箱密码绑定到当前匿名账户，账户ID保持不变
func (s *accountService) LinkAccount(ctx context.Context, email string, password string) error {
	if !utils.IsEmailValid(email) {
		return &utils.LinkAccountError{Message: "邮箱格式不正确"}
	}
	if !utils.IsPasswordValid(password) {
		return &utils.LinkAccountError{Message: "密码至少6位且需包含数字、大小写字母"}
	}

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if !current.SignedIn() {
		return &utils.LinkAccountError{Message: "当前没有已登录的账户"}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return &utils.LinkAccountError{Message: "账户绑定过程中发生错误", Cause: err}
	}
	if count > 0 {
		return &utils.LinkAccountError{Message: "该邮箱已被其他账户使用"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return &utils.LinkAccountError{Message: "密码处理失败", Cause: err}
	}

	updates := map[string]interface{}{
		"email":         email,
		"password_hash": string(hash),
		"is_anonymous":  false,
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", current.UserID).Updates(updates).Error; err != nil {
		return &utils.LinkAccountError{Message: "账户绑定过程中发生错误", Cause: err}
	}

	s.setCurrent(models.Identity{UserID: current.UserID, IsAnonymous: false})
	s.logger.Infow("账户绑定成功", "userID", current.UserID)
	return nil
}

// DeleteAccount 删除当前账户及其全部任务
func (s *accountService) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if !current.SignedIn() {
		return &utils.AccountDeletionError{Message: "当前没有已登录的账户"}
	}

	if err := s.deleteUser(ctx, current.UserID); err != nil {
		return &utils.AccountDeletionError{Message: "账户删除过程中发生错误", Cause: err}
	}

	s.setCurrent(models.Identity{})
	s.logger.Infow("账户已删除", "userID", current.UserID)
	return nil
}

// SignOut 退出登录
// 匿名身份会被连带删除，之后自动重建一个新的匿名账户
func (s *accountService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if !current.SignedIn() {
		return &utils.SignOutError{Message: "当前没有已登录的账户"}
	}

	if current.IsAnonymous {
		if err := s.deleteUser(ctx, current.UserID); err != nil {
			return &utils.SignOutError{Message: "退出登录过程中发生错误", Cause: err}
		}
	}

	s.setCurrent(models.Identity{})
	s.logger.Infow("用户已退出登录", "userID", current.UserID)

	// 退出后重新建立匿名身份
	return s.CreateAnonymousAccount(ctx)
}

func (s *accountService) deleteUser(ctx context.Context, userID string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Task{}, "user_id = ?", userID).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", userID).Error
}
