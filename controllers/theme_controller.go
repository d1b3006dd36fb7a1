package controllers

import (
	"net/http"

	"TaskMinderGo/config"
	"TaskMinderGo/models"
	"TaskMinderGo/services"

	"github.com/gin-gonic/gin"
)

// ThemeController 主题偏好控制器
type ThemeController struct {
	prefs services.PreferencesRepository
}

func NewThemeController(prefs services.PreferencesRepository) *ThemeController {
	return &ThemeController{prefs: prefs}
}

// GetTheme 获取当前用户的主题偏好
// 值缺失或损坏时回退为红色+亮色
func (tc *ThemeController) GetTheme(c *gin.Context) {
	uid := c.GetString("uid")

	prefs, err := tc.prefs.Theme(c.Request.Context(), uid)
	if err != nil {
		config.Logger.Errorw("主题偏好读取失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "主题偏好读取失败"})
		return
	}

	c.JSON(http.StatusOK, models.ThemeResponse{
		Color:     prefs.Color.String(),
		Mode:      prefs.Mode.String(),
		ColorCode: int(prefs.Color),
		ModeCode:  int(prefs.Mode),
	})
}

// UpdateTheme 更新主题颜色或模式，二者可单独提交
func (tc *ThemeController) UpdateTheme(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ColorCode != nil {
		color := models.ThemeColorFromCode(*req.ColorCode)
		if err := tc.prefs.UpdateThemeColor(c.Request.Context(), uid, color); err != nil {
			config.Logger.Errorw("主题颜色更新失败", "error", err, "uid", uid)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "主题偏好更新失败"})
			return
		}
	}
	if req.ModeCode != nil {
		mode := models.ThemeModeFromCode(*req.ModeCode)
		if err := tc.prefs.UpdateThemeMode(c.Request.Context(), uid, mode); err != nil {
			config.Logger.Errorw("主题模式更新失败", "error", err, "uid", uid)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "主题偏好更新失败"})
			return
		}
	}

	tc.GetTheme(c)
}
