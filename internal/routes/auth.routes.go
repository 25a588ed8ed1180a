package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/spaceinventor/sidoc/internal/controllers"
	"github.com/spaceinventor/sidoc/internal/middleware"
)

// RegisterAuthRoutes registers the token and WebSocket endpoints. Token
// generation gets its own, stricter rate limit.
func RegisterAuthRoutes(r *gin.Engine) {
	tokenLimiter := middleware.NewTokenRateLimiter()
	r.GET("/token", middleware.TokenRateLimitMiddleware(tokenLimiter), controllers.HandleGetToken)

	// WebSocket endpoint for live procedure events
	r.GET("/ws", controllers.HandleWebSocket)
}
