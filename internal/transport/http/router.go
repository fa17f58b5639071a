package http

import (
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/transport/http/middleware"
	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/transport/websocket"
	"github.com/gin-gonic/gin"
)

// RouterDeps is everything the API routes need.
type RouterDeps struct {
	Moves          *MoveHandler
	Arena          *ArenaHandler
	Stream         *websocket.Handler
	AllowedOrigins []string
	JWTSecret      string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	// Public Routes
	router.GET("/health", Health)
	router.GET("/api/presets", deps.Moves.ListPresets)
	router.POST("/api/move", deps.Moves.ChooseMove)

	// Protected Routes
	protected := router.Group("/api/arena")
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret))
	{
		protected.POST("", deps.Arena.Start)
		protected.GET("/:id", deps.Arena.Get)
	}

	// WebSocket Route
	router.GET("/ws/analyze", deps.Stream.HandleWebSocket)

	return router
}
