package models

import (
	"fmt"
	"strings"
	"time"
)

// Todo 待办事项模型
type Todo struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"type:varchar(300);not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Completed      bool      `gorm:"default:false" json:"completed"`
	TranslatedText string    `gorm:"type:text" json:"translated_text,omitempty"`
	TranslatedLang string    `gorm:"type:varchar(50)" json:"translated_lang,omitempty"` // the target language the user asked for
	CreatedAt      time.Time `json:"created_at"`

	Subtasks []Subtask `gorm:"constraint:OnDelete:CASCADE" json:"subtasks"`
}

// TranslationText is the text sent to the translation service.
func (t *Todo) TranslationText() string {
	return fmt.Sprintf("%s\n\n%s", t.Title, t.Description)
}

// GenerationText is the text sent to the subtask generator.
func (t *Todo) GenerationText() string {
	return strings.TrimSpace(fmt.Sprintf("%s. %s", t.Title, t.Description))
}
