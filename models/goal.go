package models

import "gorm.io/gorm"

// Goal holds a named, free-text dietary policy with optional macro targets.
type Goal struct {
	gorm.Model
	UserID             string `gorm:"index;not null"`
	Name               string `gorm:"not null"`
	Description        string `gorm:"type:text"`
	Guidelines         string `gorm:"type:text"`
	EvaluationCriteria string `gorm:"type:text"`

	TargetCalories *float64
	TargetProtein  *float64
	TargetCarbs    *float64
	TargetFat      *float64
}
