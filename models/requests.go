package models

import "strings"

// CreateTodoRequest 创建待办事项请求结构体
type CreateTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TargetLang  string `json:"target_lang"` // optional, translate on create when set
}

func (r *CreateTodoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.TargetLang = strings.TrimSpace(r.TargetLang)
}

// GenerateSubtasksRequest 生成子任务请求结构体
type GenerateSubtasksRequest struct {
	MaxSubtasks int `json:"max_subtasks"`
}

// Clamp keeps the requested count in a sane range, defaulting to 5.
// The ceiling keeps a single request from flooding a todo with subtasks
// and bounds the size asked of the generation service.
func (r *GenerateSubtasksRequest) Clamp() {
	if r.MaxSubtasks <= 0 {
		r.MaxSubtasks = 5
	}
	if r.MaxSubtasks > 10 {
		r.MaxSubtasks = 10
	}
}

// TranslateRequest 翻译请求结构体
type TranslateRequest struct {
	Target string `json:"target" binding:"required"`
}
