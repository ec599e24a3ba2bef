package api

import (
	"net/http"

	"webstar/terra-qualifier-worker/internal/api/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter creates and configures a new Gin router
func NewRouter(chatController *controllers.ChatController, conversationController *controllers.ConversationController, qualificationController *controllers.QualificationController) *gin.Engine {
	router := gin.Default() // Includes Logger and Recovery middleware

	// The chat UI is served from a different origin
	router.Use(cors.Default())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/chat", chatController.Chat)
		apiGroup.GET("/conversations/:id", conversationController.GetConversation)
		apiGroup.DELETE("/conversations/:id", conversationController.DeleteConversation)
		apiGroup.GET("/qualifications", qualificationController.GetQualifications)
	}

	return router
}
