package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"alcyxob/fitness-coach/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type planFixture struct {
	svc     PlanService
	plans   *memoryPlanRepo
	turns   *memoryTurnRepo
	storage *memoryStorage
}

func newPlanFixture() *planFixture {
	f := &planFixture{
		plans:   newMemoryPlanRepo(),
		turns:   newMemoryTurnRepo(),
		storage: newMemoryStorage(),
	}
	f.svc = NewPlanService(f.plans, f.turns, f.storage)
	return f
}

func (f *planFixture) addTurn(t *testing.T, userID primitive.ObjectID, plan []domain.Workout) primitive.ObjectID {
	t.Helper()
	id, err := f.turns.Create(context.Background(), &domain.ChatTurn{UserID: userID, WorkoutPlan: plan})
	require.NoError(t, err)
	return id
}

var twoDayPlan = []domain.Workout{
	{Day: 1, Name: "Day 1 - Chest", Exercises: []domain.Exercise{{Name: "Bench Press", Sets: 3, Reps: 10}}},
	{Day: 2, Name: "Day 2 - Legs", Exercises: []domain.Exercise{{Name: "Squats", Sets: 4, Reps: 8}}},
}

func TestSaveFromTurn(t *testing.T) {
	f := newPlanFixture()
	userID := primitive.NewObjectID()
	turnID := f.addTurn(t, userID, twoDayPlan)

	plan, err := f.svc.SaveFromTurn(context.Background(), userID, turnID, "")
	require.NoError(t, err)
	assert.Equal(t, "2-day plan (Day 1 - Chest)", plan.Name)
	assert.Equal(t, turnID, plan.ChatTurnID)
	assert.Equal(t, twoDayPlan, plan.Workouts)

	named, err := f.svc.SaveFromTurn(context.Background(), userID, turnID, "  Push Pull ")
	require.NoError(t, err)
	assert.Equal(t, "Push Pull", named.Name)

	plans, err := f.svc.ListPlans(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestSaveFromTurn_Errors(t *testing.T) {
	f := newPlanFixture()
	userID := primitive.NewObjectID()

	_, err := f.svc.SaveFromTurn(context.Background(), userID, primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, ErrTurnNotFound)

	foreign := f.addTurn(t, primitive.NewObjectID(), twoDayPlan)
	_, err = f.svc.SaveFromTurn(context.Background(), userID, foreign, "")
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	empty := f.addTurn(t, userID, nil)
	_, err = f.svc.SaveFromTurn(context.Background(), userID, empty, "")
	assert.ErrorIs(t, err, ErrNoPlanInTurn)
}

func TestGetPlan(t *testing.T) {
	f := newPlanFixture()
	userID := primitive.NewObjectID()
	plan, err := f.svc.SaveFromTurn(context.Background(), userID, f.addTurn(t, userID, twoDayPlan), "")
	require.NoError(t, err)

	got, err := f.svc.GetPlan(context.Background(), userID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Name, got.Name)

	_, err = f.svc.GetPlan(context.Background(), primitive.NewObjectID(), plan.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	_, err = f.svc.GetPlan(context.Background(), userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestExportPlan(t *testing.T) {
	f := newPlanFixture()
	userID := primitive.NewObjectID()
	plan, err := f.svc.SaveFromTurn(context.Background(), userID, f.addTurn(t, userID, twoDayPlan), "Split")
	require.NoError(t, err)

	res, err := f.svc.ExportPlan(context.Background(), userID, plan.ID)
	require.NoError(t, err)
	assert.Contains(t, res.URL, "plans/"+userID.Hex()+"/")
	assert.False(t, res.ExpiresAt.IsZero())

	stored, err := f.plans.GetByID(context.Background(), plan.ID)
	require.NoError(t, err)
	firstKey := stored.ExportKey
	require.True(t, strings.HasSuffix(firstKey, ".json"))

	var doc PlanExport
	require.NoError(t, json.Unmarshal(f.storage.objects[firstKey], &doc))
	assert.Equal(t, "Split", doc.Name)
	assert.Len(t, doc.Workouts, 2)

	// re-export replaces the previous object
	_, err = f.svc.ExportPlan(context.Background(), userID, plan.ID)
	require.NoError(t, err)
	stored, err = f.plans.GetByID(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.NotEqual(t, firstKey, stored.ExportKey)
	assert.Contains(t, f.storage.deleted, firstKey)
	assert.Len(t, f.storage.objects, 1)
}

func TestExportPlan_AccessDenied(t *testing.T) {
	f := newPlanFixture()
	userID := primitive.NewObjectID()
	plan, err := f.svc.SaveFromTurn(context.Background(), userID, f.addTurn(t, userID, twoDayPlan), "")
	require.NoError(t, err)

	_, err = f.svc.ExportPlan(context.Background(), primitive.NewObjectID(), plan.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)
	assert.Empty(t, f.storage.objects)
}

func TestDeletePlan(t *testing.T) {
	f := newPlanFixture()
	userID := primitive.NewObjectID()
	plan, err := f.svc.SaveFromTurn(context.Background(), userID, f.addTurn(t, userID, twoDayPlan), "")
	require.NoError(t, err)
	_, err = f.svc.ExportPlan(context.Background(), userID, plan.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeletePlan(context.Background(), primitive.NewObjectID(), plan.ID), ErrPlanAccessDenied)

	require.NoError(t, f.svc.DeletePlan(context.Background(), userID, plan.ID))
	assert.Empty(t, f.storage.objects)
	assert.ErrorIs(t, f.svc.DeletePlan(context.Background(), userID, plan.ID), ErrPlanNotFound)
}
