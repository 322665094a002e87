package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tzeak/yumlog/config"
	"github.com/Tzeak/yumlog/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheFreshness is how long a stored analysis result is served before it
// counts as a miss. There is no other invalidation.
const CacheFreshness = 24 * time.Hour

// CacheGet loads a fresh cached result into out. Entries older than the
// freshness window are treated as a miss and left for the next Put to
// overwrite. Returns the entry's age alongside the hit flag.
func CacheGet(key string, out any) (time.Duration, bool) {
	var entry models.AnalysisCache
	err := config.DB.First(&entry, "cache_key = ?", key).Error
	if err != nil {
		return 0, false
	}

	age := time.Since(entry.UpdatedAt)
	if age > CacheFreshness {
		return 0, false
	}
	if err := json.Unmarshal(entry.Result, out); err != nil {
		return 0, false
	}
	return age, true
}

// CachePut stores a result under key, replacing any previous entry.
func CachePut(key, userID string, value any) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize cache value: %w", err)
	}

	entry := models.AnalysisCache{
		CacheKey: key,
		UserID:   userID,
		Result:   datatypes.JSON(blob),
	}
	err = config.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "result", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}
