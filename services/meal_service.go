package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tzeak/yumlog/config"
	"github.com/Tzeak/yumlog/models"
	"github.com/Tzeak/yumlog/nutrition"
	"github.com/Tzeak/yumlog/storage"

	"gorm.io/datatypes"
)

// MealRecord is a meal row with its analysis blob decoded, the shape
// handlers return to clients.
type MealRecord struct {
	ID        uint                   `json:"id"`
	ImagePath *string                `json:"imagePath"`
	ImageURL  *string                `json:"imageUrl,omitempty"`
	Analysis  nutrition.MealAnalysis `json:"analysis"`
	Note      *string                `json:"note"`
	Timestamp time.Time              `json:"timestamp"`
	CreatedAt time.Time              `json:"createdAt"`
}

// SaveMeal persists one analyzed meal. The analysis is immutable once
// saved; edits require a new analysis cycle and a new save.
func SaveMeal(userID string, imagePath *string, analysis nutrition.MealAnalysis, note *string, timestamp time.Time) (uint, error) {
	blob, err := json.Marshal(analysis)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize analysis: %w", err)
	}

	meal := models.Meal{
		UserID:    userID,
		ImagePath: imagePath,
		Analysis:  datatypes.JSON(blob),
		Note:      note,
		Timestamp: timestamp,
	}
	if err := config.DB.Create(&meal).Error; err != nil {
		return 0, fmt.Errorf("failed to save meal: %w", err)
	}
	return meal.ID, nil
}

// ListMeals returns all of a user's meals, newest first.
func ListMeals(userID string) ([]MealRecord, error) {
	var meals []models.Meal
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meals: %w", err)
	}

	out := make([]MealRecord, 0, len(meals))
	for _, m := range meals {
		out = append(out, toRecord(m))
	}
	return out, nil
}

// ListMealsByDateRange returns meals eaten in [from, to), newest first.
func ListMealsByDateRange(userID string, from, to time.Time) ([]MealRecord, error) {
	var meals []models.Meal
	err := config.DB.
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, from, to).
		Order("timestamp DESC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meals: %w", err)
	}

	out := make([]MealRecord, 0, len(meals))
	for _, m := range meals {
		out = append(out, toRecord(m))
	}
	return out, nil
}

// DeleteMeal removes a meal owned by the user, along with its stored image.
func DeleteMeal(userID string, mealID uint) error {
	var meal models.Meal
	err := config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return fmt.Errorf("meal not found: %w", err)
	}

	if err := config.DB.Delete(&meal).Error; err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	if meal.ImagePath != nil && *meal.ImagePath != "" {
		if err := storage.Default().Remove(*meal.ImagePath); err != nil {
			// the row is already gone; an orphaned file is not worth a 500
			return nil
		}
	}
	return nil
}

// DailyStats aggregates one day's saved totals.
type DailyStats struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	TotalFiber    float64 `json:"totalFiber"`
	TotalSugar    float64 `json:"totalSugar"`
	MealCount     int     `json:"mealCount"`
}

// GetDailyStats sums analysis totals for meals logged on the given day.
func GetDailyStats(userID string, day time.Time) (*DailyStats, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	meals, err := ListMealsByDateRange(userID, start, start.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	stats := &DailyStats{MealCount: len(meals)}
	for _, m := range meals {
		stats.TotalCalories += m.Analysis.TotalCalories
		stats.TotalProtein += m.Analysis.TotalProtein
		stats.TotalCarbs += m.Analysis.TotalCarbs
		stats.TotalFat += m.Analysis.TotalFat
		stats.TotalFiber += m.Analysis.TotalFiber
		stats.TotalSugar += m.Analysis.TotalSugar
	}
	return stats, nil
}

func toRecord(m models.Meal) MealRecord {
	rec := MealRecord{
		ID:        m.ID,
		ImagePath: m.ImagePath,
		Note:      m.Note,
		Timestamp: m.Timestamp,
		CreatedAt: m.CreatedAt,
	}
	// legacy or hand-edited rows may hold junk; degrade to an empty
	// analysis instead of failing the whole listing
	_ = json.Unmarshal(m.Analysis, &rec.Analysis)
	if m.ImagePath != nil && *m.ImagePath != "" {
		u := storage.Default().URL(*m.ImagePath)
		rec.ImageURL = &u
	}
	return rec
}
