package models

// 任务优先级标签
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task 任务模型
// DueDate 为 "MM/dd/yyyy" 格式的日期键，按天查询任务时作为分片键使用
type Task struct {
	ID             string `gorm:"type:varchar(50);primaryKey" json:"id"`
	Title          string `gorm:"type:varchar(100)" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	Priority       string `gorm:"type:varchar(30)" json:"priority"`
	DueDate        string `gorm:"type:varchar(10);index:idx_tasks_user_date" json:"dueDate"`
	DueTime        string `gorm:"type:varchar(5)" json:"dueTime"`
	Completed      bool   `gorm:"default:false" json:"completed"`
	Alert          bool   `gorm:"default:false" json:"alert"`
	UserID         string `gorm:"type:varchar(50);index:idx_tasks_user_date,priority:1" json:"userId"`
	NotificationID int    `gorm:"default:0" json:"notificationId"`
}

// IsNew ID为空表示任务尚未持久化
func (t Task) IsNew() bool {
	return t.ID == ""
}
