package models

import (
	"fmt"
	"strings"
)

// LoginRequest 邮箱登录请求结构体
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LinkAccountRequest 匿名账户升级请求结构体
type LinkAccountRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SaveTaskRequest 任务保存请求结构体
// ID为空表示创建，否则为更新
type SaveTaskRequest struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Priority       string `json:"priority"`
	DueDate        string `json:"dueDate"`
	DueTime        string `json:"dueTime"`
	Completed      bool   `json:"completed"`
	Alert          bool   `json:"alert"`
	NotificationID int    `json:"notificationId"`
}

// Validate 保存前的校验：标题、描述、日期键均不能为空
func (r *SaveTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" ||
		strings.TrimSpace(r.Description) == "" ||
		strings.TrimSpace(r.DueDate) == "" {
		return fmt.Errorf("title, description and dueDate are required")
	}
	return nil
}

// ToTask 转换为任务模型，UserID由存储层注入
func (r *SaveTaskRequest) ToTask() Task {
	return Task{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Priority:       r.Priority,
		DueDate:        r.DueDate,
		DueTime:        r.DueTime,
		Completed:      r.Completed,
		Alert:          r.Alert,
		NotificationID: r.NotificationID,
	}
}

// UpdateThemeRequest 主题偏好更新请求结构体
type UpdateThemeRequest struct {
	ColorCode *int `json:"colorCode"`
	ModeCode  *int `json:"modeCode"`
}
