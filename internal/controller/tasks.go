package controller

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"tasks-api/internal/middleware"
	"tasks-api/internal/response"
	"tasks-api/internal/validation"
)

func (h *Handlers) CreateTask(c *gin.Context) {
	req := middleware.Body[validation.CreateTaskRequest](c)
	task, err := h.tasks.CreateTask(c.Request.Context(), middleware.User(c).UserID, req.Input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, task)
}

func (h *Handlers) ListTasks(c *gin.Context) {
	params := middleware.Query[validation.ListTasksParams](c)
	tasks, meta, err := h.tasks.ListTasks(c.Request.Context(), middleware.User(c).UserID, params.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Page(c, tasks, meta)
}

func (h *Handlers) GetTask(c *gin.Context) {
	task, err := h.tasks.GetTask(c.Request.Context(), middleware.User(c).UserID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, task)
}

func (h *Handlers) UpdateTask(c *gin.Context) {
	req := middleware.Body[validation.UpdateTaskRequest](c)
	task, err := h.tasks.UpdateTask(c.Request.Context(), middleware.User(c).UserID, c.Param("id"), req.Input())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, task)
}

func (h *Handlers) DeleteTask(c *gin.Context) {
	if err := h.tasks.DeleteTask(c.Request.Context(), middleware.User(c).UserID, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, gin.H{"message": "Task deleted successfully"})
}

// ImportTasks pulls items from the external feed and stores them for the caller.
func (h *Handlers) ImportTasks(c *gin.Context) {
	ctx := c.Request.Context()
	inputs, err := h.feed.ImportInputs(ctx)
	if err != nil {
		_ = c.Error(fmt.Errorf("import feed: %w", err))
		return
	}
	tasks, err := h.tasks.ImportTasks(ctx, middleware.User(c).UserID, inputs)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, tasks)
}
