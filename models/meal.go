package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Meal wraps one saved analysis. The analysis blob is immutable after save;
// editing requires a new analysis cycle before saving again.
type Meal struct {
	gorm.Model
	UserID    string         `gorm:"index;not null"`
	ImagePath *string        // nil for text-only meals
	Analysis  datatypes.JSON `gorm:"not null"` // serialized nutrition.MealAnalysis
	Note      *string
	Timestamp time.Time `gorm:"index;not null"` // when the meal was eaten/logged
}
