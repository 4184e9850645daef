package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/store"
	"todoapi/pkg/metrics"
)

type TaskHandler struct {
	tasks       *store.TaskStore
	logger      *zap.Logger
	development bool
}

func NewTaskHandler(tasks *store.TaskStore, logger *zap.Logger, development bool) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger, development: development}
}

// caller returns the authenticated identity injected by the auth
// middleware.
func caller(c *gin.Context) (int, string) {
	return c.GetInt("user_id"), c.GetString("username")
}

func notFound(idStr string) error {
	return apperr.NotFound(fmt.Sprintf("Todo with ID %s not found", idStr))
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, username := caller(c)
	h.logger.Info("Getting todos", zap.Int("user_id", userID), zap.String("username", username))

	opts := model.ParseListOptions(
		c.Query("completed"),
		c.Query("limit"),
		c.Query("sortBy"),
		c.Query("order"),
	)

	tasks := h.tasks.List(userID, opts)
	respondList(c, tasks, len(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, _ := caller(c)
	idStr := c.Param("id")

	id, err := strconv.Atoi(idStr)
	if err != nil {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}

	task, ok := h.tasks.Get(userID, id)
	if !ok {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}

	respondData(c, http.StatusOK, "", task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, username := caller(c)

	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.Validation("Invalid request body"), h.development)
		return
	}

	if err := model.ValidateCreate(req.Title, req.DueDate); err != nil {
		respondError(c, h.logger, err, h.development)
		return
	}

	task := h.tasks.Create(userID, strings.TrimSpace(req.Title), strings.TrimSpace(req.Description), req.DueDate, req.Completed)

	h.logger.Info("Created todo",
		zap.Int("task_id", task.ID),
		zap.String("username", username),
	)
	metrics.IncrementTaskMutation("create")

	respondData(c, http.StatusCreated, "Todo created successfully", task)
}

func (h *TaskHandler) ReplaceTask(c *gin.Context) {
	userID, _ := caller(c)
	idStr := c.Param("id")

	id, err := strconv.Atoi(idStr)
	if err != nil {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}
	if _, ok := h.tasks.Get(userID, id); !ok {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}

	var req model.ReplaceTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.Validation("Invalid request body"), h.development)
		return
	}

	if err := model.ValidateCreate(req.Title, req.DueDate); err != nil {
		respondError(c, h.logger, err, h.development)
		return
	}

	// The store re-checks ownership under its lock, so a concurrent
	// delete between the check above and here still yields not-found.
	task, ok := h.tasks.Replace(userID, id, strings.TrimSpace(req.Title), strings.TrimSpace(req.Description), req.DueDate, req.Completed)
	if !ok {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}

	metrics.IncrementTaskMutation("replace")
	respondData(c, http.StatusOK, "Todo updated successfully", task)
}

func (h *TaskHandler) PatchTask(c *gin.Context) {
	userID, _ := caller(c)
	idStr := c.Param("id")

	id, err := strconv.Atoi(idStr)
	if err != nil {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}
	if _, ok := h.tasks.Get(userID, id); !ok {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}

	var req model.PatchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperr.Validation("Invalid request body"), h.development)
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		respondError(c, h.logger, apperr.Validation("Title cannot be empty"), h.development)
		return
	}
	if req.DueDate != nil && *req.DueDate != "" && !model.ValidDueDate(*req.DueDate) {
		respondError(c, h.logger, apperr.Validation("Due date must be in YYYY-MM-DD format"), h.development)
		return
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		req.Description = &trimmed
	}

	task, ok := h.tasks.Patch(userID, id, req)
	if !ok {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}

	metrics.IncrementTaskMutation("patch")
	respondData(c, http.StatusOK, "Todo updated successfully", task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, username := caller(c)
	idStr := c.Param("id")

	id, err := strconv.Atoi(idStr)
	if err != nil {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}

	task, ok := h.tasks.Delete(userID, id)
	if !ok {
		respondError(c, h.logger, notFound(idStr), h.development)
		return
	}

	h.logger.Info("Deleted todo",
		zap.Int("task_id", task.ID),
		zap.String("username", username),
	)
	metrics.IncrementTaskMutation("delete")

	respondData(c, http.StatusOK, "Todo deleted successfully", task)
}

func (h *TaskHandler) DeleteAllTasks(c *gin.Context) {
	userID, username := caller(c)

	deleted := h.tasks.DeleteAll(userID)

	h.logger.Info("Deleted all todos",
		zap.Int("user_id", userID),
		zap.String("username", username),
		zap.Int("deleted_count", deleted),
	)
	metrics.IncrementTaskMutation("delete_all")

	respondDeleted(c, fmt.Sprintf("Deleted %d todos", deleted), deleted)
}
