package utils

import "fmt"

// 账户与配置相关的错误类别，便于日志与诊断区分

// AuthenticationError 认证失败（凭证错误、认证过程中的网络错误等）
type AuthenticationError struct {
	Message string
	Cause   error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("认证失败: %s", e.Message)
}

func (e *AuthenticationError) Unwrap() error { return e.Cause }

// AccountCreationError 账户创建失败
type AccountCreationError struct {
	Message string
	Cause   error
}

func (e *AccountCreationError) Error() string {
	return fmt.Sprintf("账户创建失败: %s", e.Message)
}

func (e *AccountCreationError) Unwrap() error { return e.Cause }

// LinkAccountError 账户绑定失败（如邮箱已被占用）
type LinkAccountError struct {
	Message string
	Cause   error
}

func (e *LinkAccountError) Error() string {
	return fmt.Sprintf("账户绑定失败: %s", e.Message)
}

func (e *LinkAccountError) Unwrap() error { return e.Cause }

// AccountDeletionError 账户删除失败
type AccountDeletionError struct {
	Message string
	Cause   error
}

func (e *AccountDeletionError) Error() string {
	return fmt.Sprintf("账户删除失败: %s", e.Message)
}

func (e *AccountDeletionError) Unwrap() error { return e.Cause }

// SignOutError 退出登录失败
type SignOutError struct {
	Message string
	Cause   error
}

func (e *SignOutError) Error() string {
	return fmt.Sprintf("退出登录失败: %s", e.Message)
}

func (e *SignOutError) Unwrap() error { return e.Cause }

// ConfigurationError 远程配置获取或解析失败
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("配置获取失败: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }
