package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatTurnCollectionName = "chat_turns"

type mongoChatTurnRepository struct {
	collection *mongo.Collection
}

func NewMongoChatTurnRepository(db *mongo.Database) repository.ChatTurnRepository {
	return &mongoChatTurnRepository{
		collection: db.Collection(chatTurnCollectionName),
	}
}

func (r *mongoChatTurnRepository) Create(ctx context.Context, turn *domain.ChatTurn) (primitive.ObjectID, error) {
	if turn.UserID.IsZero() {
		return primitive.NilObjectID, errors.New("chat turn user id is required")
	}

	turn.ID = primitive.NewObjectID()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, turn); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert chat turn: %w", err)
	}
	return turn.ID, nil
}

func (r *mongoChatTurnRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ChatTurn, error) {
	var turn domain.ChatTurn
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&turn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &turn, nil
}

func (r *mongoChatTurnRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.ChatTurn, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	turns := []domain.ChatTurn{}
	if err = cursor.All(ctx, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

// EnsureChatTurnIndexes backs the per-user history query.
func EnsureChatTurnIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
