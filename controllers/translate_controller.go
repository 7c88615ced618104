package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zafranhaider/AI-TODO-APP/config"
	"github.com/zafranhaider/AI-TODO-APP/models"
	"github.com/zafranhaider/AI-TODO-APP/services"
)

type TranslateController struct {
	translateService *services.TranslateService
}

func NewTranslateController(translateService *services.TranslateService) *TranslateController {
	return &TranslateController{
		translateService: translateService,
	}
}

// TranslateTodo 将待办文本翻译为目标语言并保存。
// 翻译失败时不改动已保存的翻译字段。
func (tc *TranslateController) TranslateTodo(ctx *gin.Context) {
	todo, ok := findTodo(ctx, false)
	if !ok {
		return
	}

	var req models.TranslateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "target language required"})
		return
	}
	target := strings.TrimSpace(req.Target)
	if target == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "target language required"})
		return
	}

	translated, ok := tc.translateService.TranslateText(ctx, todo.TranslationText(), target)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "translation failed"})
		return
	}

	if err := config.DB.Model(todo).Updates(map[string]interface{}{
		"translated_text": translated,
		"translated_lang": target,
	}).Error; err != nil {
		config.Logger.Errorw("保存翻译结果失败", "error", err, "id", todo.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save translation"})
		return
	}

	ctx.JSON(http.StatusOK, models.TranslateResponse{
		Translated: translated,
		Target:     target,
	})
}
