package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	meetingdto "github.com/meetinglabs/meeting-summarizer/internal/adapter/dto/meeting"
	"github.com/meetinglabs/meeting-summarizer/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.welcome)
	e.GET("/health", rt.healthCheck)

	meetingGroup := e.Group("/meeting")
	meetingGroup.POST("/summarize", rt.meetingHandler.Summarize)
	meetingGroup.GET("/test", rt.meetingHandler.Test)
	meetingGroup.GET("/:id", rt.meetingHandler.GetByID)
	meetingGroup.POST("/chat", rt.meetingHandler.Chat)
}

// welcome returns basic service identification
func (rt *Router) welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Meeting Summarizer API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"summarize": "POST /meeting/summarize",
			"meeting":   "GET /meeting/:id",
			"chat":      "POST /meeting/chat",
			"health":    "GET /health",
		},
	})
}

// healthCheck reports liveness plus whether the upstream gateways have
// credentials; the pipeline still serves fallbacks when they do not.
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, meetingdto.HealthResponse{
		Status:        "healthy",
		ASRConfigured: rt.cfg.AssemblyConfigured(),
		LLMConfigured: rt.cfg.GeminiConfigured(),
	})
}
