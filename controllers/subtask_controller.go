package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zafranhaider/AI-TODO-APP/config"
	"github.com/zafranhaider/AI-TODO-APP/models"
	"github.com/zafranhaider/AI-TODO-APP/services"
)

type SubtaskController struct {
	subtaskService *services.SubtaskService
}

func NewSubtaskController(subtaskService *services.SubtaskService) *SubtaskController {
	return &SubtaskController{
		subtaskService: subtaskService,
	}
}

// GenerateSubtasks 为待办生成子任务并入库。
// 生成服务失败时服务层自动回退，此接口在待办存在时总能成功。
func (sc *SubtaskController) GenerateSubtasks(ctx *gin.Context) {
	todo, ok := findTodo(ctx, false)
	if !ok {
		return
	}

	// 请求体可省略，省略时使用默认数量
	var req models.GenerateSubtasksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.Clamp()

	entries := sc.subtaskService.GenerateSubtasks(ctx, todo.GenerationText(), req.MaxSubtasks)

	subtasks := make([]models.Subtask, 0, len(entries))
	for _, text := range entries {
		subtasks = append(subtasks, models.Subtask{
			TodoID: todo.ID,
			Text:   text,
		})
	}
	if len(subtasks) > 0 {
		if err := config.DB.Create(&subtasks).Error; err != nil {
			config.Logger.Errorw("保存子任务失败", "error", err, "todoID", todo.ID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save subtasks"})
			return
		}
	}

	config.Logger.Infow("生成子任务完成",
		"todoID", todo.ID,
		"count", len(subtasks),
	)
	ctx.JSON(http.StatusCreated, models.GenerateSubtasksResponse{
		Added:    len(subtasks),
		Subtasks: subtasks,
	})
}

// ToggleSubtask 切换子任务完成状态
func (sc *SubtaskController) ToggleSubtask(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid subtask id"})
		return
	}

	var subtask models.Subtask
	if err := config.DB.First(&subtask, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "subtask not found"})
		} else {
			config.Logger.Errorw("获取子任务失败", "error", err, "id", id)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subtask"})
		}
		return
	}

	if err := config.DB.Model(&subtask).Update("done", !subtask.Done).Error; err != nil {
		config.Logger.Errorw("更新子任务状态失败", "error", err, "id", subtask.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update subtask"})
		return
	}
	subtask.Done = !subtask.Done

	ctx.JSON(http.StatusOK, gin.H{"data": subtask})
}
