package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/extraction"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ChatHandler serves the coach conversation, manual search and the parse tool.
type ChatHandler struct {
	chatService service.ChatService
	names       *extraction.NameExtractor
}

func NewChatHandler(chatService service.ChatService, maxExerciseNames int) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		names:       extraction.NewNameExtractor(maxExerciseNames),
	}
}

// --- Request/Response Structs ---

// ChatRequest accepts the legacy fitness-trainer body. EnableSearch defaults to true.
type ChatRequest struct {
	Message      string `json:"message"`
	EnableSearch *bool  `json:"enable_search"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

type ParseResponse struct {
	WorkoutPlan   []domain.Workout `json:"workout_plan"`
	ExerciseNames []string         `json:"exercise_names"`
}

// --- Handler Methods ---

// FitnessTrainer godoc
// @Summary Ask the coach without an account
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Message"
// @Success 200 {object} service.ChatResult
// @Failure 400 {object} gin.H "Message is required"
// @Failure 502 {object} gin.H "Model unavailable"
// @Router /fitness-trainer [post]
func (h *ChatHandler) FitnessTrainer(c *gin.Context) {
	h.chat(c, false)
}

// Chat godoc
// @Summary Ask the coach; the turn is stored in the user's history
// @Tags Chat
// @Security BearerAuth
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	h.chat(c, true)
}

func (h *ChatHandler) chat(c *gin.Context, authenticated bool) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	chatReq := service.ChatRequest{
		Message:      req.Message,
		EnableSearch: req.EnableSearch == nil || *req.EnableSearch,
	}
	if authenticated {
		userID, err := getUserIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Failed to get user ID from token")
			return
		}
		chatReq.UserID = userID
	}

	result, err := h.chatService.Chat(c.Request.Context(), chatReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageRequired):
			abortWithError(c, http.StatusBadRequest, "Message is required")
		case errors.Is(err, service.ErrCompletionFailed):
			log.WithError(err).Error("chat completion failed")
			abortWithError(c, http.StatusBadGateway, "Failed to get a reply from the model")
		default:
			log.WithError(err).Error("chat failed")
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// History godoc
// @Summary List the caller's recent chat turns, newest first
// @Tags Chat
// @Security BearerAuth
// @Param limit query int false "Max turns (default 20, max 100)"
// @Router /api/v1/chat/history [get]
func (h *ChatHandler) History(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Failed to get user ID from token")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
	}

	turns, err := h.chatService.History(c.Request.Context(), userID, limit)
	if err != nil {
		log.WithError(err).Error("failed to load chat history")
		abortWithError(c, http.StatusInternalServerError, "Failed to load chat history")
		return
	}
	c.JSON(http.StatusOK, turns)
}

// Search godoc
// @Summary Run the web search used to augment answers
// @Tags Chat
// @Param request body SearchRequest true "Query"
// @Router /search [post]
func (h *ChatHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	outcome, err := h.chatService.Search(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, service.ErrQueryRequired) {
			abortWithError(c, http.StatusBadRequest, "Query is required")
			return
		}
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// Parse godoc
// @Summary Extract a workout plan and exercise names from arbitrary text
// @Tags Tools
// @Param request body ParseRequest true "Text"
// @Success 200 {object} ParseResponse
// @Router /api/v1/parse [post]
func (h *ChatHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		abortWithError(c, http.StatusBadRequest, "Text is required")
		return
	}

	plan := extraction.ParseWorkoutPlan(req.Text)
	if plan == nil {
		plan = []domain.Workout{}
	}
	c.JSON(http.StatusOK, ParseResponse{
		WorkoutPlan:   plan,
		ExerciseNames: h.names.Extract(req.Text),
	})
}

// Index lists the public endpoints.
func (h *ChatHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "AI Fitness Coach API is running",
		"features": []string{
			"Fitness training advice",
			"DuckDuckGo search integration",
			"Workout plan extraction",
			"Exercise image lookup",
		},
		"endpoints": gin.H{
			"/fitness-trainer": "POST - Main fitness trainer endpoint",
			"/search":          "POST - Manual search testing",
			"/api/v1/parse":    "POST - Extract a workout plan from text",
			"/api/v1/chat":     "POST - Chat with history (auth)",
			"/api/v1/plans":    "GET/POST - Saved workout plans (auth)",
			"/health":          "GET - Health check",
			"/":                "GET - API status",
		},
	})
}

// Health probes the search backend.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"search_enabled": h.chatService.SearchHealthy(c.Request.Context()),
		"model":          h.chatService.Model(),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
