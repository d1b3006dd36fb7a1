package services

import (
	"context"
	"strconv"
	"sync"

	"TaskMinderGo/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// 远程配置存储在Redis哈希中的键名
const (
	remoteConfigHashKey       = "remote_config"
	showAlertOptionSwitchKey  = "show_alert_option_switch"
	defaultShowAlertOptionVal = true
)

// ConfigurationService 远程配置契约
// 获取失败时继续使用上一次激活的值，不阻塞启动
type ConfigurationService interface {
	FetchConfiguration(ctx context.Context) (bool, error)
	IsShowAlertOptionSwitch() bool
}

type configurationService struct {
	rdb    *redis.Client
	logger *zap.SugaredLogger

	mu              sync.Mutex
	showAlertOption bool
}

func NewConfigurationService(rdb *redis.Client, logger *zap.SugaredLogger) ConfigurationService {
	return &configurationService{
		rdb:             rdb,
		logger:          logger,
		showAlertOption: defaultShowAlertOptionVal,
	}
}

// FetchConfiguration 拉取并激活最新配置，成功返回true
func (s *configurationService) FetchConfiguration(ctx context.Context) (bool, error) {
	value, err := s.rdb.HGet(ctx, remoteConfigHashKey, showAlertOptionSwitchKey).Result()
	if err == redis.Nil {
		// 远端未设置该项，保持默认值
		return true, nil
	}
	if err != nil {
		return false, &utils.ConfigurationError{Message: "拉取远程配置失败", Cause: err}
	}

	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return false, &utils.ConfigurationError{Message: "远程配置格式不正确", Cause: err}
	}

	s.mu.Lock()
	s.showAlertOption = enabled
	s.mu.Unlock()

	s.logger.Infow("远程配置已激活", showAlertOptionSwitchKey, enabled)
	return true, nil
}

// IsShowAlertOptionSwitch 提醒开关选项是否展示
func (s *configurationService) IsShowAlertOptionSwitch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showAlertOption
}
