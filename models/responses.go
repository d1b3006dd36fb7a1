package models

// AuthResponse 认证响应结构体
type AuthResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// TaskListResponse 任务列表响应结构体
type TaskListResponse struct {
	DateKey string `json:"dateKey"`
	Tasks   []Task `json:"tasks"`
}

// ThemeResponse 主题偏好响应结构体
type ThemeResponse struct {
	Color     string `json:"color"`
	Mode      string `json:"mode"`
	ColorCode int    `json:"colorCode"`
	ModeCode  int    `json:"modeCode"`
}

// ConfigResponse 远程配置响应结构体
type ConfigResponse struct {
	ShowAlertOptionSwitch bool `json:"showAlertOptionSwitch"`
}
