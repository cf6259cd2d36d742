package api

import (
	"net/http"

	"alcyxob/fitness-coach/internal/metrics"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	JWTSecret        string
	MaxExerciseNames int
	AuthService      service.AuthService
	ChatService      service.ChatService
	PlanService      service.PlanService
	Metrics          *metrics.Manager
	Gatherer         prometheus.Gatherer // served on /metrics; nil skips the route
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService)
	chatHandler := NewChatHandler(deps.ChatService, deps.MaxExerciseNames)
	planHandler := NewPlanHandler(deps.PlanService)

	authMiddleware := AuthMiddleware(deps.JWTSecret)

	if deps.Metrics != nil {
		router.Use(MetricsMiddleware(deps.Metrics))
	}

	// --- Public ---
	router.GET("/", chatHandler.Index)
	router.GET("/health", chatHandler.Health)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.POST("/fitness-trainer", chatHandler.FitnessTrainer)
	router.POST("/search", chatHandler.Search)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/parse", chatHandler.Parse)

		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	// --- Protected ---
	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			user, err := deps.AuthService.GetUser(c.Request.Context(), userID)
			if err != nil {
				abortWithError(c, http.StatusNotFound, "User not found")
				return
			}
			c.JSON(http.StatusOK, MapUserToResponse(user))
		})

		chatGroup := protected.Group("/chat")
		{
			chatGroup.POST("", chatHandler.Chat)
			chatGroup.GET("/history", chatHandler.History)
		}

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.SavePlan)
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.POST("/:planId/export", planHandler.ExportPlan)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
		}
	}
}
