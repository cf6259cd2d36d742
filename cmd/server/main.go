package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-coach/internal/api"
	"alcyxob/fitness-coach/internal/config"
	"alcyxob/fitness-coach/internal/llm"
	"alcyxob/fitness-coach/internal/logging"
	"alcyxob/fitness-coach/internal/metrics"
	"alcyxob/fitness-coach/internal/repository/mongo"
	"alcyxob/fitness-coach/internal/search"
	"alcyxob/fitness-coach/internal/service"
	"alcyxob/fitness-coach/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// @title AI Fitness Coach API
// @version 1.0
// @description Fitness coaching chat with web search, workout plan extraction and saved plans.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// A missing .env is fine, real deployments use the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("could not read .env: %v", err)
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logging.Setup(logging.SetupParams{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		FileName:   cfg.Log.File,
		AlsoStdout: true,
	})
	log.Info("starting fitness coach server")

	if cfg.LLM.APIKey == "" {
		log.Warn("LLM_API_KEY is not set, completions will fail")
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Database Connection ---
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	dbClient, err := mongo.ConnectDB(connectCtx, cfg.Database.URI)
	cancelConnect()
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			log.WithError(err).Error("index creation failed")
			return
		}
		log.Info("database indexes ensured")
	}()

	// --- Initialize Storage ---
	storageCtx, cancelStorage := context.WithTimeout(context.Background(), 10*time.Second)
	fileStorage, err := storage.NewS3Storage(storageCtx, cfg.S3)
	cancelStorage()
	if err != nil {
		log.Fatalf("failed to initialize S3 storage: %v", err)
	}

	// --- External Clients ---
	searchClient := search.NewClient(search.Options{
		HTTPClient:  &http.Client{Timeout: cfg.Search.Timeout},
		CacheSizeMB: cfg.Search.CacheSizeMB,
		CacheTTL:    cfg.Search.CacheTTL,
	})
	llmClient := llm.NewClient(llm.Options{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
		MaxRetries:  -1,
	})

	// --- Repositories and Services ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	turnRepo := mongo.NewMongoChatTurnRepository(appDB)
	planRepo := mongo.NewMongoSavedPlanRepository(appDB)

	metricsManager := metrics.NewManager("coach", "server", prometheus.DefaultRegisterer)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	chatService := service.NewChatService(llmClient, searchClient, turnRepo, metricsManager, service.ChatConfig{
		SearchEnabled:     cfg.Search.Enabled,
		MaxSearchResults:  cfg.Search.MaxResults,
		MaxExerciseNames:  cfg.Extraction.MaxExerciseNames,
		MaxImageLookups:   cfg.Images.MaxLookups,
		ImagesPerExercise: cfg.Images.PerExercise,
	})
	planService := service.NewPlanService(planRepo, turnRepo, fileStorage)

	// --- HTTP ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, api.Dependencies{
		JWTSecret:        cfg.JWT.Secret,
		MaxExerciseNames: cfg.Extraction.MaxExerciseNames,
		AuthService:      authService,
		ChatService:      chatService,
		PlanService:      planService,
		Metrics:          metricsManager,
		Gatherer:         prometheus.DefaultGatherer,
	})

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s (model %s)", cfg.Server.Address, llmClient.Model())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// In-flight chat requests wait on the model, give them time to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	log.Info("server exiting")
}
