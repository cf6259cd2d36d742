// internal/domain/plan.go
package domain

// Category is the body-part tag derived from an exercise name.
type Category string

const (
	CategoryChest     Category = "chest"
	CategoryBiceps    Category = "biceps"
	CategoryTriceps   Category = "triceps"
	CategoryBack      Category = "back"
	CategoryShoulders Category = "shoulders"
	CategoryLegs      Category = "legs"
	CategoryCore      Category = "core"
	CategoryCardio    Category = "cardio"
	CategoryOther     Category = "other"
)

// Exercise is one prescribed movement within a workout day.
type Exercise struct {
	Name         string   `bson:"name" json:"name"`
	Sets         int      `bson:"sets" json:"sets"`
	Reps         int      `bson:"reps" json:"reps"`
	Weight       float64  `bson:"weight" json:"weight"` // Kilograms, 0 means bodyweight/unspecified
	Category     Category `bson:"category" json:"category"`
	Instructions string   `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

// Workout is one day of a multi-day plan, as extracted from a model reply.
type Workout struct {
	Day       int        `bson:"day" json:"day"`   // 1 (Mon) - 7 (Sun) for weekday headers, N for "Day N"
	Name      string     `bson:"name" json:"name"` // e.g., "Day 1 - Chest"
	Exercises []Exercise `bson:"exercises" json:"exercises"`
	Duration  int        `bson:"duration" json:"duration"` // Estimated minutes
	Category  Category   `bson:"category" json:"category"`
}
