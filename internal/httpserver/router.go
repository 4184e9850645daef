package httpserver

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"todoapi/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

type Options struct {
	JWTSecret   string
	StaticDir   string
	Development bool
}

func NewRouter(
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	logger *zap.Logger,
	opts Options,
) *Router {
	if !opts.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(RequestLogger(logger))
	r.Use(Recovery(logger, opts.Development))

	// Health and metrics endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Frontend
	if opts.StaticDir != "" {
		r.StaticFile("/", filepath.Join(opts.StaticDir, "index.html"))
	}

	// Public auth routes
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	// Protected todo routes
	todos := r.Group("/api/todos")
	todos.Use(AuthMiddleware(opts.JWTSecret))
	{
		todos.GET("", taskHandler.ListTasks)
		todos.POST("", taskHandler.CreateTask)
		todos.DELETE("", taskHandler.DeleteAllTasks)
		todos.GET("/:id", taskHandler.GetTask)
		todos.PUT("/:id", taskHandler.ReplaceTask)
		todos.PATCH("/:id", taskHandler.PatchTask)
		todos.DELETE("/:id", taskHandler.DeleteTask)
	}

	// Unmatched routes get the same envelope shape as everything else.
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path),
		})
	})

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
