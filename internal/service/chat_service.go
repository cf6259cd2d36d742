package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/extraction"
	"alcyxob/fitness-coach/internal/llm"
	"alcyxob/fitness-coach/internal/metrics"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/search"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrMessageRequired  = errors.New("message is required")
	ErrQueryRequired    = errors.New("query is required")
	ErrCompletionFailed = errors.New("chat completion failed")
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	imageLookupWorkers  = 4
)

// Completer produces an assistant reply for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt llm.Prompt) (*llm.Completion, error)
	Model() string
}

// Searcher looks up web snippets and images.
type Searcher interface {
	SearchText(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
	SearchImages(ctx context.Context, query string, limit int) ([]domain.ExerciseImage, error)
}

type ChatConfig struct {
	SearchEnabled     bool
	MaxSearchResults  int
	MaxExerciseNames  int
	MaxImageLookups   int
	ImagesPerExercise int
}

// ChatRequest is one incoming message. A zero UserID means an anonymous
// caller whose turn is not stored.
type ChatRequest struct {
	UserID       primitive.ObjectID
	Message      string
	EnableSearch bool
}

type ChatResult struct {
	TurnID         string                 `json:"turn_id,omitempty"`
	UserMessage    string                 `json:"user_message"`
	AIReply        string                 `json:"ai_reply"`
	SearchUsed     bool                   `json:"search_used"`
	Timestamp      time.Time              `json:"timestamp"`
	ModelUsed      string                 `json:"model_used"`
	WorkoutPlan    []domain.Workout       `json:"workout_plan"`
	ExerciseNames  []string               `json:"exercise_names"`
	ExerciseImages []domain.ExerciseImage `json:"exercise_images"`
}

type SearchOutcome struct {
	Query     string                `json:"query"`
	Results   []domain.SearchResult `json:"results"`
	Context   string                `json:"search_results"`
	Timestamp time.Time             `json:"timestamp"`
}

type ChatService interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResult, error)
	History(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.ChatTurn, error)
	Search(ctx context.Context, query string) (*SearchOutcome, error)
	// SearchHealthy runs a one-result probe query.
	SearchHealthy(ctx context.Context) bool
	Model() string
}

type chatService struct {
	completer Completer
	searcher  Searcher
	turnRepo  repository.ChatTurnRepository
	names     *extraction.NameExtractor
	metrics   *metrics.Manager
	cfg       ChatConfig
	now       func() time.Time
}

func NewChatService(
	completer Completer,
	searcher Searcher,
	turnRepo repository.ChatTurnRepository,
	metricsManager *metrics.Manager,
	cfg ChatConfig,
) ChatService {
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = 5
	}
	if cfg.ImagesPerExercise <= 0 {
		cfg.ImagesPerExercise = 1
	}
	return &chatService{
		completer: completer,
		searcher:  searcher,
		turnRepo:  turnRepo,
		names:     extraction.NewNameExtractor(cfg.MaxExerciseNames),
		metrics:   metricsManager,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *chatService) Model() string {
	return s.completer.Model()
}

// Chat answers one message and extracts the workout plan, exercise names and
// images from the reply.
func (s *chatService) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}

	// 1. Optional web search
	var searchContext string
	searchUsed := s.cfg.SearchEnabled && req.EnableSearch && search.ShouldSearch(message)
	if searchUsed {
		searchContext = s.searchContext(ctx, message)
	}

	// 2. Completion
	completion, err := s.completer.Complete(ctx, llm.Prompt{
		UserMessage:   message,
		SearchContext: searchContext,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}
	s.metrics.HistLLMDuration.Observe(completion.Duration.Seconds())

	// 3. Post-process the reply
	plan := extraction.ParseWorkoutPlan(completion.Content)
	if plan == nil {
		plan = []domain.Workout{}
	}
	names := s.names.Extract(completion.Content)
	images := s.lookupImages(ctx, names)

	result := &ChatResult{
		UserMessage:    message,
		AIReply:        completion.Content,
		SearchUsed:     searchUsed,
		Timestamp:      s.now(),
		ModelUsed:      completion.Model,
		WorkoutPlan:    plan,
		ExerciseNames:  names,
		ExerciseImages: images,
	}

	s.metrics.CounterChatTurns.WithLabelValues(strconv.FormatBool(searchUsed)).Inc()
	s.metrics.CounterExtractedDays.Add(float64(len(plan)))
	s.metrics.CounterExtractedNames.Add(float64(len(names)))

	// 4. Persist for signed-in users; a storage failure does not lose the reply
	if !req.UserID.IsZero() {
		turn := &domain.ChatTurn{
			UserID:         req.UserID,
			UserMessage:    message,
			AIReply:        completion.Content,
			SearchUsed:     searchUsed,
			Model:          completion.Model,
			WorkoutPlan:    plan,
			ExerciseNames:  names,
			ExerciseImages: images,
			CreatedAt:      result.Timestamp,
		}
		if turnID, err := s.turnRepo.Create(ctx, turn); err != nil {
			log.WithError(err).WithField("user_id", req.UserID.Hex()).Error("failed to store chat turn")
		} else {
			result.TurnID = turnID.Hex()
		}
	}

	log.WithFields(log.Fields{
		"search_used": searchUsed,
		"days":        len(plan),
		"names":       len(names),
		"images":      len(images),
	}).Debug("chat turn answered")

	return result, nil
}

func (s *chatService) searchContext(ctx context.Context, query string) string {
	results, err := s.searcher.SearchText(ctx, query, s.cfg.MaxSearchResults)
	if err != nil {
		s.metrics.CounterSearchFailures.Inc()
		log.WithError(err).Warn("web search failed")
		return search.UnavailableContext(err)
	}
	return search.FormatContext(results)
}

// lookupImages searches images for the first MaxImageLookups names. Failed
// lookups are skipped; output keeps the order of names.
func (s *chatService) lookupImages(ctx context.Context, names []string) []domain.ExerciseImage {
	lookups := names
	if s.cfg.MaxImageLookups <= 0 {
		return []domain.ExerciseImage{}
	}
	if len(lookups) > s.cfg.MaxImageLookups {
		lookups = lookups[:s.cfg.MaxImageLookups]
	}

	perName := make([][]domain.ExerciseImage, len(lookups))
	var g errgroup.Group
	g.SetLimit(imageLookupWorkers)
	for i, name := range lookups {
		g.Go(func() error {
			images, err := s.searcher.SearchImages(ctx, name, s.cfg.ImagesPerExercise)
			if err != nil {
				s.metrics.CounterSearchFailures.Inc()
				log.WithError(err).WithField("exercise", name).Debug("image lookup failed")
				return nil
			}
			perName[i] = images
			return nil
		})
	}
	_ = g.Wait()

	images := []domain.ExerciseImage{}
	for _, found := range perName {
		images = append(images, found...)
	}
	return images
}

func (s *chatService) History(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.ChatTurn, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.turnRepo.ListByUser(ctx, userID, int64(limit))
}

// Search runs a manual web search. Failures are reported inside the outcome
// the same way the chat prompt sees them.
func (s *chatService) Search(ctx context.Context, query string) (*SearchOutcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryRequired
	}

	outcome := &SearchOutcome{
		Query:     query,
		Results:   []domain.SearchResult{},
		Timestamp: s.now(),
	}
	results, err := s.searcher.SearchText(ctx, query, s.cfg.MaxSearchResults)
	if err != nil {
		s.metrics.CounterSearchFailures.Inc()
		log.WithError(err).Warn("manual search failed")
		outcome.Context = search.UnavailableContext(err)
		return outcome, nil
	}
	outcome.Results = results
	outcome.Context = search.FormatContext(results)
	return outcome, nil
}

func (s *chatService) SearchHealthy(ctx context.Context) bool {
	results, err := s.searcher.SearchText(ctx, "fitness", 1)
	return err == nil && len(results) > 0
}
