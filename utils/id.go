package utils

import (
	"hash/fnv"

	"github.com/google/uuid"
)

func GenerateID() string {
	return uuid.New().String()
}

// NotificationIDForTask 根据任务ID派生本地提醒通知的整数句柄
// 在创建时一次性确定，保证同一任务的句柄可复现
func NotificationIDForTask(taskID string) int {
	h := fnv.New32a()
	h.Write([]byte(taskID))
	return int(h.Sum32() & 0x7fffffff)
}
