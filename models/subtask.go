package models

// Subtask 子任务模型
type Subtask struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	TodoID uint   `gorm:"not null;index" json:"todo_id"`
	Text   string `gorm:"type:varchar(500);not null" json:"text"`
	Done   bool   `gorm:"default:false" json:"done"`
}
