package services

import (
	"context"
	"sync"

	"TaskMinderGo/models"

	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// fakeStorage 可编程的存储桩，记录订阅与写入调用
type fakeStorage struct {
	mu            sync.Mutex
	subscriptions []*fakeSubscription
	tasks         map[string]models.Task

	addErr    error
	updateErr error
	getErr    error

	addCalls    int
	updateCalls []models.Task
	deleteCalls []string
}

type fakeSubscription struct {
	UserID  string
	DateKey string
	Ctx     context.Context
	Out     chan []models.Task
	Errs    chan error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{tasks: make(map[string]models.Task)}
}

func (f *fakeStorage) SelectedDayTasks(ctx context.Context, userID string, dateKey string) (<-chan []models.Task, <-chan error) {
	// 通道不随ctx关闭，便于测试向已取消的订阅写入陈旧快照
	out := make(chan []models.Task, 4)
	errs := make(chan error, 1)
	sub := &fakeSubscription{UserID: userID, DateKey: dateKey, Ctx: ctx, Out: out, Errs: errs}
	f.mu.Lock()
	f.subscriptions = append(f.subscriptions, sub)
	f.mu.Unlock()
	return out, errs
}

func (f *fakeStorage) Task(ctx context.Context, taskID string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (f *fakeStorage) AddTask(ctx context.Context, task models.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.addErr != nil {
		return "", f.addErr
	}
	task.ID = "generated-id"
	task.UserID = "u1"
	f.tasks[task.ID] = task
	return task.ID, nil
}

func (f *fakeStorage) UpdateTask(ctx context.Context, task models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, task)
	if f.updateErr != nil {
		return f.updateErr
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeStorage) DeleteTask(ctx context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, taskID)
	delete(f.tasks, taskID)
	return nil
}

func (f *fakeStorage) subscriptionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscriptions)
}

func (f *fakeStorage) subscription(i int) *fakeSubscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscriptions[i]
}

// fakeAccounts 身份流可控的账户桩
type fakeAccounts struct {
	mu       sync.Mutex
	current  models.Identity
	channels []chan models.Identity

	createErr   error
	createCalls int
}

func newFakeAccounts(identity models.Identity) *fakeAccounts {
	return &fakeAccounts{current: identity}
}

func (f *fakeAccounts) CurrentUser(ctx context.Context) <-chan models.Identity {
	ch := make(chan models.Identity, 8)
	f.mu.Lock()
	ch <- f.current
	f.channels = append(f.channels, ch)
	f.mu.Unlock()
	return ch
}

func (f *fakeAccounts) setIdentity(identity models.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = identity
	for _, ch := range f.channels {
		ch <- identity
	}
}

func (f *fakeAccounts) CurrentUserID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current.UserID
}

func (f *fakeAccounts) IsUserSignedIn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current.SignedIn()
}

func (f *fakeAccounts) Authenticate(ctx context.Context, email string, password string) error {
	return nil
}

func (f *fakeAccounts) CreateAnonymousAccount(ctx context.Context) error {
	f.mu.Lock()
	f.createCalls++
	err := f.createErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	f.setIdentity(models.Identity{UserID: "anon-1", IsAnonymous: true})
	return nil
}

func (f *fakeAccounts) LinkAccount(ctx context.Context, email string, password string) error {
	return nil
}

func (f *fakeAccounts) DeleteAccount(ctx context.Context) error { return nil }

func (f *fakeAccounts) SignOut(ctx context.Context) error { return nil }

// fakeConfiguration 标志值固定的远程配置桩
type fakeConfiguration struct {
	showAlert bool
	fetchErr  error
}

func (f *fakeConfiguration) FetchConfiguration(ctx context.Context) (bool, error) {
	if f.fetchErr != nil {
		return false, f.fetchErr
	}
	return true, nil
}

func (f *fakeConfiguration) IsShowAlertOptionSwitch() bool {
	return f.showAlert
}
