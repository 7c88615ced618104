package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/zafranhaider/AI-TODO-APP/config"
	"github.com/zafranhaider/AI-TODO-APP/controllers"
	"github.com/zafranhaider/AI-TODO-APP/services"
)

func RegisterRoutes(r *gin.Engine, client *services.OpenAIClient, conf config.Config) {
	// 未配置生成服务时传nil接口，子任务生成走启发式回退
	var generator services.TextGenerator
	if client != nil {
		generator = client
	}
	subtaskService := services.NewSubtaskService(generator)
	translateService := services.NewTranslateService(conf.LibreTranslateURL)

	todoController := controllers.NewTodoController(translateService)
	subtaskController := controllers.NewSubtaskController(subtaskService)
	translateController := controllers.NewTranslateController(translateService)

	api := r.Group("/api/v1")
	{
		api.GET("/todos", todoController.ListTodos)
		api.POST("/todos", todoController.CreateTodo)
		api.GET("/todos/:id", todoController.GetTodo)
		api.POST("/todos/:id/toggle", todoController.ToggleTodo)
		api.DELETE("/todos/:id", todoController.DeleteTodo)
		api.POST("/todos/:id/subtasks", subtaskController.GenerateSubtasks)
		api.POST("/subtasks/:id/toggle", subtaskController.ToggleSubtask)
		api.POST("/todos/:id/translate", translateController.TranslateTodo)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
