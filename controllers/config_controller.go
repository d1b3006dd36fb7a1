package controllers

import (
	"net/http"

	"TaskMinderGo/config"
	"TaskMinderGo/models"
	"TaskMinderGo/services"

	"github.com/gin-gonic/gin"
)

// ConfigController 远程配置控制器
type ConfigController struct {
	configs services.ConfigurationService
}

func NewConfigController(configs services.ConfigurationService) *ConfigController {
	return &ConfigController{configs: configs}
}

// GetConfig 读取当前已激活的配置标志
func (cc *ConfigController) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, models.ConfigResponse{
		ShowAlertOptionSwitch: cc.configs.IsShowAlertOptionSwitch(),
	})
}

// RefreshConfig 拉取并激活最新配置
// 失败时沿用上一次激活的值，不视为致命错误
func (cc *ConfigController) RefreshConfig(c *gin.Context) {
	activated, err := cc.configs.FetchConfiguration(c.Request.Context())
	if err != nil {
		config.Logger.Errorw("远程配置拉取失败", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"activated": activated,
		"config": models.ConfigResponse{
			ShowAlertOptionSwitch: cc.configs.IsShowAlertOptionSwitch(),
		},
	})
}
