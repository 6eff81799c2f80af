package routes

import (
	"github.com/amchigale/konkani-dictionary/internal/handler"
	"github.com/amchigale/konkani-dictionary/internal/middleware"
	"github.com/amchigale/konkani-dictionary/internal/service"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes under basePath
func Setup(
	router *gin.Engine,
	basePath string,
	dictionaryHandler *handler.DictionaryHandler,
	suggestionHandler *handler.SuggestionHandler,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	agentHandler *handler.AgentHandler,
	authService service.AuthService,
	agentKeys []string,
	agentLimiter *middleware.AgentRateLimiter,
) {
	api := router.Group(basePath)

	// Public dictionary
	api.GET("/dictionary", dictionaryHandler.List)
	api.GET("/dictionary/search", dictionaryHandler.Search)
	api.GET("/dictionary/:id", dictionaryHandler.Get)
	api.GET("/dictionary/:id/history", dictionaryHandler.History)
	api.GET("/stats", dictionaryHandler.Stats)

	// Crowdsourcing
	api.POST("/suggestions", suggestionHandler.Submit)

	// Chatbot agents
	agent := api.Group("/agent", middleware.AgentAPIKey(agentKeys), agentLimiter.Middleware())
	agent.POST("/search", agentHandler.Search)

	// Expert moderation
	admin := api.Group("/admin")
	admin.POST("/login", authHandler.Login)

	expert := admin.Group("", middleware.ExpertAuth(authService))
	expert.GET("/validate", authHandler.Validate)
	expert.GET("/stats", adminHandler.Stats)
	expert.GET("/suggestions", adminHandler.ListSuggestions)
	expert.GET("/suggestions/:id", adminHandler.GetSuggestion)
	expert.POST("/suggestions/:id/review", adminHandler.Review)
	expert.POST("/suggestions/:id/claim", adminHandler.Claim)
}
