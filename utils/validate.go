package utils

import (
	"regexp"
	"strings"
)

const minPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
	hasLower     = regexp.MustCompile(`[a-z]`)
	hasUpper     = regexp.MustCompile(`[A-Z]`)
)

// IsEmailValid 校验邮箱格式
func IsEmailValid(email string) bool {
	return strings.TrimSpace(email) != "" && emailPattern.MatchString(email)
}

// IsPasswordValid 校验密码强度：至少6位，包含数字、大写和小写字母
func IsPasswordValid(password string) bool {
	return len(password) >= minPasswordLength &&
		hasDigit.MatchString(password) &&
		hasLower.MatchString(password) &&
		hasUpper.MatchString(password)
}
