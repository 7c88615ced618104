package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zafranhaider/AI-TODO-APP/config"
	"github.com/zafranhaider/AI-TODO-APP/models"
	"github.com/zafranhaider/AI-TODO-APP/services"
)

type TodoController struct {
	translateService *services.TranslateService
}

func NewTodoController(translateService *services.TranslateService) *TodoController {
	return &TodoController{
		translateService: translateService,
	}
}

// orderedSubtasks 子任务按ID升序（即创建顺序）展示
func orderedSubtasks(db *gorm.DB) *gorm.DB {
	return db.Order("subtasks.id ASC")
}

// findTodo 解析路径中的ID并加载待办，出错时已写好响应
func findTodo(ctx *gin.Context, preloadSubtasks bool) (*models.Todo, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return nil, false
	}

	query := config.DB
	if preloadSubtasks {
		query = query.Preload("Subtasks", orderedSubtasks)
	}

	var todo models.Todo
	if err := query.First(&todo, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		} else {
			config.Logger.Errorw("获取待办失败", "error", err, "id", id)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch todo"})
		}
		return nil, false
	}
	return &todo, true
}

// ListTodos 获取全部待办（按创建时间倒序）
func (tc *TodoController) ListTodos(ctx *gin.Context) {
	var todos []models.Todo
	if err := config.DB.
		Preload("Subtasks", orderedSubtasks).
		Order("created_at DESC, id DESC").
		Find(&todos).Error; err != nil {
		config.Logger.Errorw("获取待办列表失败", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list todos"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": todos})
}

// CreateTodo 创建待办，带目标语言时尽力翻译（翻译失败不影响创建）
func (tc *TodoController) CreateTodo(ctx *gin.Context) {
	var req models.CreateTodoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.Normalize()
	if req.Title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	todo := models.Todo{
		Title:       req.Title,
		Description: req.Description,
	}
	if err := config.DB.Create(&todo).Error; err != nil {
		config.Logger.Errorw("创建待办失败", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}

	if req.TargetLang != "" {
		if translated, ok := tc.translateService.TranslateText(ctx, todo.TranslationText(), req.TargetLang); ok {
			if err := config.DB.Model(&todo).Updates(map[string]interface{}{
				"translated_text": translated,
				"translated_lang": req.TargetLang,
			}).Error; err != nil {
				config.Logger.Errorw("保存翻译结果失败", "error", err, "id", todo.ID)
			} else {
				todo.TranslatedText = translated
				todo.TranslatedLang = req.TargetLang
			}
		}
	}

	ctx.JSON(http.StatusCreated, gin.H{"data": todo})
}

// GetTodo 获取单个待办及其子任务
func (tc *TodoController) GetTodo(ctx *gin.Context) {
	todo, ok := findTodo(ctx, true)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": todo})
}

// ToggleTodo 切换待办完成状态
func (tc *TodoController) ToggleTodo(ctx *gin.Context) {
	todo, ok := findTodo(ctx, false)
	if !ok {
		return
	}

	if err := config.DB.Model(todo).Update("completed", !todo.Completed).Error; err != nil {
		config.Logger.Errorw("更新待办状态失败", "error", err, "id", todo.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update todo"})
		return
	}
	todo.Completed = !todo.Completed

	ctx.JSON(http.StatusOK, gin.H{"data": todo})
}

// DeleteTodo 删除待办及其全部子任务（事务内级联删除）
func (tc *TodoController) DeleteTodo(ctx *gin.Context) {
	todo, ok := findTodo(ctx, false)
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", todo.ID).Delete(&models.Subtask{}).Error; err != nil {
			return err
		}
		return tx.Delete(todo).Error
	})
	if err != nil {
		config.Logger.Errorw("删除待办失败", "error", err, "id", todo.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete todo"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Todo deleted."})
}
