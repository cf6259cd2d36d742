package api

import (
	"context"
	"testing"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/metrics"
	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "api-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, userID string, expiresIn time.Duration) string {
	t.Helper()
	claims := &service.JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

type fakeChatService struct {
	lastReq     service.ChatRequest
	result      *service.ChatResult
	err         error
	turns       []domain.ChatTurn
	lastLimit   int
	lastQuery   string
	searchErr   error
	healthy     bool
	historyUser primitive.ObjectID
}

func (f *fakeChatService) Chat(_ context.Context, req service.ChatRequest) (*service.ChatResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeChatService) History(_ context.Context, userID primitive.ObjectID, limit int) ([]domain.ChatTurn, error) {
	f.historyUser = userID
	f.lastLimit = limit
	return f.turns, nil
}

func (f *fakeChatService) Search(_ context.Context, query string) (*service.SearchOutcome, error) {
	f.lastQuery = query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &service.SearchOutcome{Query: query, Results: []domain.SearchResult{}, Context: "No relevant search results found."}, nil
}

func (f *fakeChatService) SearchHealthy(context.Context) bool { return f.healthy }

func (f *fakeChatService) Model() string { return "test/model" }

type fakePlanService struct {
	plan      *domain.SavedPlan
	plans     []domain.SavedPlan
	export    *service.ExportResult
	err       error
	lastUser  primitive.ObjectID
	lastTurn  primitive.ObjectID
	lastName  string
	deletedID primitive.ObjectID
}

func (f *fakePlanService) SaveFromTurn(_ context.Context, userID, turnID primitive.ObjectID, name string) (*domain.SavedPlan, error) {
	f.lastUser, f.lastTurn, f.lastName = userID, turnID, name
	return f.plan, f.err
}

func (f *fakePlanService) ListPlans(_ context.Context, userID primitive.ObjectID) ([]domain.SavedPlan, error) {
	f.lastUser = userID
	return f.plans, f.err
}

func (f *fakePlanService) GetPlan(_ context.Context, userID, _ primitive.ObjectID) (*domain.SavedPlan, error) {
	f.lastUser = userID
	return f.plan, f.err
}

func (f *fakePlanService) ExportPlan(_ context.Context, userID, _ primitive.ObjectID) (*service.ExportResult, error) {
	f.lastUser = userID
	return f.export, f.err
}

func (f *fakePlanService) DeletePlan(_ context.Context, userID, planID primitive.ObjectID) error {
	f.lastUser, f.deletedID = userID, planID
	return f.err
}

type fakeAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (f *fakeAuthService) Register(_ context.Context, name, email, _ string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: primitive.NewObjectID(), Name: name, Email: email}, nil
}

func (f *fakeAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func (f *fakeAuthService) GetUser(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, service.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeAuthService) GetJWTSecret() string { return testJWTSecret }

type testServer struct {
	router  *gin.Engine
	chat    *fakeChatService
	plans   *fakePlanService
	auth    *fakeAuthService
	metrics *metrics.Manager
}

func newTestServer() *testServer {
	ts := &testServer{
		router:  gin.New(),
		chat:    &fakeChatService{healthy: true},
		plans:   &fakePlanService{},
		auth:    &fakeAuthService{},
		metrics: metrics.NewTestManager(),
	}
	SetupRoutes(ts.router, Dependencies{
		JWTSecret:        testJWTSecret,
		MaxExerciseNames: 100,
		AuthService:      ts.auth,
		ChatService:      ts.chat,
		PlanService:      ts.plans,
		Metrics:          ts.metrics,
	})
	return ts
}
