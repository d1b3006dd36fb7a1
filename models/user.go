package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"userId"`
	Email        string    `gorm:"type:varchar(100)" json:"email,omitempty"`
	PasswordHash string    `gorm:"type:varchar(100)" json:"-"`
	IsAnonymous  bool      `gorm:"default:true" json:"isAnonymous"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity 当前用户身份，作为认证状态流的元素对外发布
type Identity struct {
	UserID      string `json:"userId"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// SignedIn UserID为空表示未登录
func (i Identity) SignedIn() bool {
	return i.UserID != ""
}
