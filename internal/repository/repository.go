package repository

import (
	"context"

	"alcyxob/fitness-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ChatTurnRepository stores answered chat messages.
type ChatTurnRepository interface {
	Create(ctx context.Context, turn *domain.ChatTurn) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ChatTurn, error)
	// ListByUser returns the newest turns first, at most limit of them.
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.ChatTurn, error)
}

// SavedPlanRepository stores workout plans kept by users.
type SavedPlanRepository interface {
	Create(ctx context.Context, plan *domain.SavedPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SavedPlan, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.SavedPlan, error)
	SetExportKey(ctx context.Context, id primitive.ObjectID, key string) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error // Ensure the user owns the plan
}
