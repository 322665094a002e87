package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisCache stores one goal-analysis or recommendation result per key.
// Freshness is enforced by the cache service, not here.
type AnalysisCache struct {
	ID        uint   `gorm:"primaryKey"`
	CacheKey  string `gorm:"uniqueIndex;not null"`
	UserID    string `gorm:"index"`
	Result    datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}
