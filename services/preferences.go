package services

import (
	"context"
	"fmt"
	"strconv"

	"TaskMinderGo/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// 主题偏好在Redis哈希中的固定键名
const (
	themeColorKey = "selected_theme_color"
	themeModeKey  = "selected_theme_mode"
)

// PreferencesRepository 用户主题偏好契约
// ThemeState 返回偏好的实时流，值损坏或缺失时回退为红色+亮色
type PreferencesRepository interface {
	ThemeState(ctx context.Context, userID string) <-chan models.ThemePreferences
	Theme(ctx context.Context, userID string) (models.ThemePreferences, error)
	UpdateThemeColor(ctx context.Context, userID string, color models.ThemeColor) error
	UpdateThemeMode(ctx context.Context, userID string, mode models.ThemeMode) error
}

type preferencesRepository struct {
	rdb    *redis.Client
	logger *zap.SugaredLogger
}

func NewPreferencesRepository(rdb *redis.Client, logger *zap.SugaredLogger) PreferencesRepository {
	return &preferencesRepository{rdb: rdb, logger: logger}
}

func prefsHashKey(userID string) string {
	return fmt.Sprintf("prefs:%s", userID)
}

func prefsChannel(userID string) string {
	return fmt.Sprintf("prefs:%s:updates", userID)
}

// ThemeState 返回主题偏好流，先推送当前值，偏好变更后推送新值
func (r *preferencesRepository) ThemeState(ctx context.Context, userID string) <-chan models.ThemePreferences {
	out := make(chan models.ThemePreferences, 1)
	sub := r.rdb.Subscribe(ctx, prefsChannel(userID))

	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()

		current := r.loadTheme(ctx, userID)
		select {
		case out <- current:
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
				select {
				case out <- r.loadTheme(ctx, userID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// Theme 读取当前主题偏好
func (r *preferencesRepository) Theme(ctx context.Context, userID string) (models.ThemePreferences, error) {
	return r.loadTheme(ctx, userID), nil
}

// loadTheme 读取并解码主题偏好，任何读取或解码失败都回退为默认值
func (r *preferencesRepository) loadTheme(ctx context.Context, userID string) models.ThemePreferences {
	prefs := models.DefaultThemePreferences()

	values, err := r.rdb.HMGet(ctx, prefsHashKey(userID), themeColorKey, themeModeKey).Result()
	if err != nil {
		r.logger.Errorw("主题偏好读取失败", "error", err, "uid", userID)
		return prefs
	}

	if code, ok := intValue(values[0]); ok {
		prefs.Color = models.ThemeColorFromCode(code)
	}
	if code, ok := intValue(values[1]); ok {
		prefs.Mode = models.ThemeModeFromCode(code)
	}
	return prefs
}

func intValue(raw interface{}) (int, bool) {
	s, ok := raw.(string)
	if !ok {
		return 0, false
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return code, true
}

// UpdateThemeColor 更新主题颜色
func (r *preferencesRepository) UpdateThemeColor(ctx context.Context, userID string, color models.ThemeColor) error {
	return r.updateField(ctx, userID, themeColorKey, int(color))
}

// UpdateThemeMode 更新主题模式
func (r *preferencesRepository) UpdateThemeMode(ctx context.Context, userID string, mode models.ThemeMode) error {
	return r.updateField(ctx, userID, themeModeKey, int(mode))
}

func (r *preferencesRepository) updateField(ctx context.Context, userID string, field string, code int) error {
	if err := r.rdb.HSet(ctx, prefsHashKey(userID), field, code).Err(); err != nil {
		return err
	}
	if err := r.rdb.Publish(ctx, prefsChannel(userID), field).Err(); err != nil {
		r.logger.Errorw("主题偏好变更通知发布失败", "error", err, "uid", userID)
	}
	return nil
}
