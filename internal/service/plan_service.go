package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTurnNotFound     = errors.New("chat turn not found")
	ErrPlanNotFound     = errors.New("workout plan not found")
	ErrNoPlanInTurn     = errors.New("chat turn contains no workout plan")
	ErrPlanAccessDenied = errors.New("access denied to this workout plan")
)

const exportURLExpiry = time.Hour

// PlanExport is the document written to object storage.
type PlanExport struct {
	Name       string           `json:"name"`
	ExportedAt time.Time        `json:"exported_at"`
	Workouts   []domain.Workout `json:"workouts"`
}

type ExportResult struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PlanService interface {
	SaveFromTurn(ctx context.Context, userID, turnID primitive.ObjectID, name string) (*domain.SavedPlan, error)
	ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.SavedPlan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.SavedPlan, error)
	ExportPlan(ctx context.Context, userID, planID primitive.ObjectID) (*ExportResult, error)
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
}

type planService struct {
	planRepo repository.SavedPlanRepository
	turnRepo repository.ChatTurnRepository
	storage  storage.FileStorage
	now      func() time.Time
}

func NewPlanService(planRepo repository.SavedPlanRepository, turnRepo repository.ChatTurnRepository, fileStorage storage.FileStorage) PlanService {
	return &planService{
		planRepo: planRepo,
		turnRepo: turnRepo,
		storage:  fileStorage,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SaveFromTurn keeps the workout plan extracted from one of the user's chat turns.
func (s *planService) SaveFromTurn(ctx context.Context, userID, turnID primitive.ObjectID, name string) (*domain.SavedPlan, error) {
	// 1. Load the turn and check ownership
	turn, err := s.turnRepo.GetByID(ctx, turnID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTurnNotFound
		}
		return nil, err
	}
	if turn.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	if len(turn.WorkoutPlan) == 0 {
		return nil, ErrNoPlanInTurn
	}

	// 2. Name defaults to the day names
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPlanName(turn.WorkoutPlan)
	}

	plan := &domain.SavedPlan{
		UserID:     userID,
		ChatTurnID: turnID,
		Name:       name,
		Workouts:   turn.WorkoutPlan,
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func defaultPlanName(workouts []domain.Workout) string {
	return fmt.Sprintf("%d-day plan (%s)", len(workouts), workouts[0].Name)
}

func (s *planService) ListPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.SavedPlan, error) {
	return s.planRepo.ListByUser(ctx, userID)
}

func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.SavedPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// ExportPlan uploads the plan as JSON and returns a temporary download link.
// Each export gets a fresh key; the previous object is removed.
func (s *planService) ExportPlan(ctx context.Context, userID, planID primitive.ObjectID) (*ExportResult, error) {
	plan, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(PlanExport{
		Name:       plan.Name,
		ExportedAt: s.now(),
		Workouts:   plan.Workouts,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal plan export: %w", err)
	}

	key := fmt.Sprintf("plans/%s/%s.json", userID.Hex(), uuid.New().String())
	if err := s.storage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, err
	}
	if err := s.planRepo.SetExportKey(ctx, plan.ID, key); err != nil {
		return nil, err
	}
	if plan.ExportKey != "" && plan.ExportKey != key {
		if err := s.storage.DeleteObject(ctx, plan.ExportKey); err != nil {
			log.WithError(err).WithField("key", plan.ExportKey).Warn("failed to remove previous plan export")
		}
	}

	url, err := s.storage.GeneratePresignedDownloadURL(ctx, key, exportURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ExportResult{URL: url, ExpiresAt: s.now().Add(exportURLExpiry)}, nil
}

func (s *planService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	plan, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if plan.ExportKey != "" {
		if err := s.storage.DeleteObject(ctx, plan.ExportKey); err != nil {
			log.WithError(err).WithField("key", plan.ExportKey).Warn("failed to remove plan export")
		}
	}
	return nil
}
