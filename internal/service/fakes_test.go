package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/llm"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCompleter struct {
	reply   string
	err     error
	prompts []llm.Prompt
}

func (f *fakeCompleter) Complete(_ context.Context, prompt llm.Prompt) (*llm.Completion, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{Content: f.reply, Model: "test/model", Duration: 10 * time.Millisecond}, nil
}

func (f *fakeCompleter) Model() string { return "test/model" }

type fakeSearcher struct {
	mu          sync.Mutex
	results     []domain.SearchResult
	textErr     error
	failImages  map[string]bool
	textQueries []string
	imageCalls  []string
}

func (f *fakeSearcher) SearchText(_ context.Context, query string, limit int) ([]domain.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textQueries = append(f.textQueries, query)
	if f.textErr != nil {
		return nil, f.textErr
	}
	if len(f.results) > limit {
		return f.results[:limit], nil
	}
	return f.results, nil
}

func (f *fakeSearcher) SearchImages(_ context.Context, query string, limit int) ([]domain.ExerciseImage, error) {
	f.mu.Lock()
	f.imageCalls = append(f.imageCalls, query)
	f.mu.Unlock()
	if f.failImages[query] {
		return nil, errors.New("image search down")
	}
	images := make([]domain.ExerciseImage, 0, limit)
	for i := 0; i < limit; i++ {
		images = append(images, domain.ExerciseImage{
			Exercise: query,
			URL:      "https://img.example.com/" + strings.ReplaceAll(strings.ToLower(query), " ", "-") + ".jpg",
		})
	}
	return images, nil
}

type memoryUserRepo struct {
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	key := strings.ToLower(user.Email)
	if _, ok := r.users[key]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	stored := *user
	r.users[key] = &stored
	return user.ID, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memoryTurnRepo struct {
	mu        sync.Mutex
	turns     map[primitive.ObjectID]domain.ChatTurn
	createErr error
}

func newMemoryTurnRepo() *memoryTurnRepo {
	return &memoryTurnRepo{turns: map[primitive.ObjectID]domain.ChatTurn{}}
}

func (r *memoryTurnRepo) Create(_ context.Context, turn *domain.ChatTurn) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	turn.ID = primitive.NewObjectID()
	r.turns[turn.ID] = *turn
	return turn.ID, nil
}

func (r *memoryTurnRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ChatTurn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.turns[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *memoryTurnRepo) ListByUser(_ context.Context, userID primitive.ObjectID, limit int64) ([]domain.ChatTurn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	turns := []domain.ChatTurn{}
	for _, t := range r.turns {
		if t.UserID == userID {
			turns = append(turns, t)
		}
	}
	sort.Slice(turns, func(i, j int) bool { return turns[i].CreatedAt.After(turns[j].CreatedAt) })
	if int64(len(turns)) > limit {
		turns = turns[:limit]
	}
	return turns, nil
}

type memoryPlanRepo struct {
	plans map[primitive.ObjectID]domain.SavedPlan
}

func newMemoryPlanRepo() *memoryPlanRepo {
	return &memoryPlanRepo{plans: map[primitive.ObjectID]domain.SavedPlan{}}
}

func (r *memoryPlanRepo) Create(_ context.Context, plan *domain.SavedPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	plan.UpdatedAt = plan.CreatedAt
	r.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *memoryPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.SavedPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *memoryPlanRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.SavedPlan, error) {
	plans := []domain.SavedPlan{}
	for _, p := range r.plans {
		if p.UserID == userID {
			plans = append(plans, p)
		}
	}
	return plans, nil
}

func (r *memoryPlanRepo) SetExportKey(_ context.Context, id primitive.ObjectID, key string) error {
	p, ok := r.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.ExportKey = key
	r.plans[id] = p
	return nil
}

func (r *memoryPlanRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	p, ok := r.plans[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type memoryStorage struct {
	objects map[string][]byte
	deleted []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (s *memoryStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	s.objects[key] = body
	return nil
}

func (s *memoryStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + key + "?sig=1", nil
}

func (s *memoryStorage) DeleteObject(_ context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}
