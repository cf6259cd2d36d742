// internal/domain/chat.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchResult is a single web search hit used to augment the prompt.
type SearchResult struct {
	Title   string `bson:"title" json:"title"`
	URL     string `bson:"url" json:"url"`
	Content string `bson:"content" json:"content"`
}

// ExerciseImage holds image metadata returned by the image search for an exercise name.
type ExerciseImage struct {
	Exercise string `bson:"exercise" json:"exercise"` // The exercise name used as the query
	URL      string `bson:"url" json:"url"`
	Title    string `bson:"title" json:"title"`
	Source   string `bson:"source" json:"source"`
	Width    int    `bson:"width" json:"width"`
	Height   int    `bson:"height" json:"height"`
}

// ChatTurn is one user message together with the model reply and everything derived from it.
type ChatTurn struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	UserMessage    string             `bson:"userMessage" json:"userMessage"`
	AIReply        string             `bson:"aiReply" json:"aiReply"`
	SearchUsed     bool               `bson:"searchUsed" json:"searchUsed"`
	Model          string             `bson:"model" json:"model"`
	WorkoutPlan    []Workout          `bson:"workoutPlan,omitempty" json:"workoutPlan,omitempty"`
	ExerciseNames  []string           `bson:"exerciseNames,omitempty" json:"exerciseNames,omitempty"`
	ExerciseImages []ExerciseImage    `bson:"exerciseImages,omitempty" json:"exerciseImages,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// SavedPlan is a workout plan the user decided to keep from one of their chat turns.
type SavedPlan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	ChatTurnID primitive.ObjectID `bson:"chatTurnId" json:"chatTurnId"` // Turn the plan was extracted from
	Name       string             `bson:"name" json:"name"`
	Workouts   []Workout          `bson:"workouts" json:"workouts"`
	ExportKey  string             `bson:"exportKey,omitempty" json:"-"` // Object key of the latest S3 export - internal use
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
