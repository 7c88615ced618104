package models

// GenerateSubtasksResponse 子任务生成响应结构体
type GenerateSubtasksResponse struct {
	Added    int       `json:"added"`
	Subtasks []Subtask `json:"subtasks"`
}

// TranslateResponse 翻译响应结构体
type TranslateResponse struct {
	Translated string `json:"translated"`
	Target     string `json:"target"`
}
