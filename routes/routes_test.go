package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"TaskMinderGo/config"
	"TaskMinderGo/models"
	"TaskMinderGo/services"
	"TaskMinderGo/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop().Sugar()
	utils.InitJWT("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	logger := zap.NewNop().Sugar()
	accounts := services.NewAccountService(db, logger)
	storage := services.NewStorageService(db, rdb, accounts, logger)
	configs := services.NewConfigurationService(rdb, logger)
	prefs := services.NewPreferencesRepository(rdb, logger)
	scheduler := services.NewReminderScheduler(logger, func(models.Task) {})
	t.Cleanup(scheduler.Stop)

	r := gin.New()
	RegisterRoutes(r, accounts, storage, configs, prefs, scheduler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method string, path string, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func anonymousToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/anonymous", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.True(t, resp.User.IsAnonymous)
	return resp.Token
}

func TestAuthRequired(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/tasks?date=03/15/2024", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks?date=03/15/2024", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token := anonymousToken(t, r)

	// 创建
	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks", token, models.SaveTaskRequest{
		Title:       "买菜",
		Description: "晚饭的食材",
		Priority:    models.PriorityMedium,
		DueDate:     "03/15/2024",
		DueTime:     "14:30",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.UserID)

	// 按日期查询
	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks?date=03/15/2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list models.TaskListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "买菜", list.Tasks[0].Title)

	// 切换完成状态
	w = doJSON(t, r, http.MethodPatch, "/api/v1/tasks/"+created.ID+"/flag", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var flagged models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &flagged))
	assert.True(t, flagged.Completed)

	// 删除
	w = doJSON(t, r, http.MethodDelete, "/api/v1/tasks/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskOwnershipFollowsRequestToken(t *testing.T) {
	r := newTestRouter(t)

	// 两个客户端先后认证，后认证者不得抢走先认证者的写入归属
	tokenA := anonymousToken(t, r)
	tokenB := anonymousToken(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks", tokenA, models.SaveTaskRequest{
		Title: "买菜", Description: "晚饭的食材", DueDate: "03/15/2024",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// A能按日期读回自己的任务
	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks?date=03/15/2024", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listA models.TaskListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listA))
	require.Len(t, listA.Tasks, 1)
	assert.Equal(t, created.ID, listA.Tasks[0].ID)

	// B在同一日期下看不到A的任务
	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks?date=03/15/2024", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listB models.TaskListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listB))
	assert.Empty(t, listB.Tasks)
}

func TestUpdateTaskKeepsReminderHandle(t *testing.T) {
	r := newTestRouter(t)
	token := anonymousToken(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks", token, models.SaveTaskRequest{
		Title: "买菜", Description: "晚饭的食材", DueDate: "03/15/2024", DueTime: "14:30",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.NotificationID)

	// 更新请求不携带notificationId
	w = doJSON(t, r, http.MethodPut, "/api/v1/tasks/"+created.ID, token, models.SaveTaskRequest{
		Title: "买菜和水果", Description: "晚饭的食材", DueDate: "03/15/2024", DueTime: "14:30",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var saved models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, created.NotificationID, saved.NotificationID)
	assert.Equal(t, "买菜和水果", saved.Title)
}

func TestCreateTaskValidation(t *testing.T) {
	r := newTestRouter(t)
	token := anonymousToken(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks", token, models.SaveTaskRequest{
		Title: "  ", Description: "x", DueDate: "03/15/2024",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLinkAndLoginFlow(t *testing.T) {
	r := newTestRouter(t)
	token := anonymousToken(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/link", token, models.LinkAccountRequest{
		Email: "user@example.com", Password: "Passw0rd",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var linked models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &linked))
	assert.False(t, linked.User.IsAnonymous)

	// 弱密码被拒绝
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/link", token, models.LinkAccountRequest{
		Email: "other@example.com", Password: "weak",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 邮箱密码登录
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email: "user@example.com", Password: "Passw0rd",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var loggedIn models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	assert.Equal(t, linked.User.UserID, loggedIn.User.UserID)

	// 错误密码
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email: "user@example.com", Password: "Wrong0pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestThemeEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := anonymousToken(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/v1/theme", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var theme models.ThemeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &theme))
	assert.Equal(t, 0, theme.ColorCode)
	assert.Equal(t, 0, theme.ModeCode)

	colorCode, modeCode := int(models.ThemeColorPurple), int(models.ThemeModeDark)
	w = doJSON(t, r, http.MethodPut, "/api/v1/theme", token, models.UpdateThemeRequest{
		ColorCode: &colorCode, ModeCode: &modeCode,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &theme))
	assert.Equal(t, colorCode, theme.ColorCode)
	assert.Equal(t, modeCode, theme.ModeCode)
}

func TestConfigEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := anonymousToken(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/v1/config", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.ShowAlertOptionSwitch)

	w = doJSON(t, r, http.MethodPost, "/api/v1/config/refresh", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
