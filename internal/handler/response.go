package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todoapi/internal/apperr"
)

// Envelope is the uniform response wrapper. Count and DeletedCount use
// pointers so a zero still serializes when a handler sets it.
type Envelope struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Data         any    `json:"data,omitempty"`
	Count        *int   `json:"count,omitempty"`
	DeletedCount *int   `json:"deletedCount,omitempty"`
	Error        string `json:"error,omitempty"`
}

func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func respondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

func respondDeleted(c *gin.Context, message string, deleted int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, DeletedCount: &deleted})
}

// respondError maps a failure to its envelope. Internal faults are
// logged with their cause; the cause reaches the caller only in
// development mode.
func respondError(c *gin.Context, logger *zap.Logger, err error, development bool) {
	status := apperr.Status(err)
	env := Envelope{Success: false, Message: apperr.Message(err)}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		if development {
			env.Error = err.Error()
		}
	}

	c.JSON(status, env)
}
