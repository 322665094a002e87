package services

import (
	"testing"
	"time"

	"github.com/Tzeak/yumlog/config"
	"github.com/Tzeak/yumlog/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.Goal{},
		&models.AnalysisCache{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	config.DB = db
}

func TestCachePutAndGet(t *testing.T) {
	setupTestDB(t)

	in := TodayResult{Recommendation: "more greens", TodayStats: TotalsStats{Meals: 2}}
	if err := CachePut("u1:today:1:keto:2026-08-31", "u1", in); err != nil {
		t.Fatal(err)
	}

	var out TodayResult
	age, ok := CacheGet("u1:today:1:keto:2026-08-31", &out)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if age < 0 || age > time.Minute {
		t.Errorf("age = %v, want just written", age)
	}
	if out.Recommendation != "more greens" || out.TodayStats.Meals != 2 {
		t.Errorf("got %+v", out)
	}
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	setupTestDB(t)

	var out TodayResult
	if _, ok := CacheGet("nope", &out); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestCacheStaleEntryIsAMiss(t *testing.T) {
	setupTestDB(t)

	if err := CachePut("u1:goal:2:keto:2026-08-30", "u1", GoalProgressResult{}); err != nil {
		t.Fatal(err)
	}

	// age the entry past the freshness window
	stale := time.Now().Add(-25 * time.Hour)
	if err := config.DB.Model(&models.AnalysisCache{}).
		Where("cache_key = ?", "u1:goal:2:keto:2026-08-30").
		Update("updated_at", stale).Error; err != nil {
		t.Fatal(err)
	}

	var out GoalProgressResult
	if _, ok := CacheGet("u1:goal:2:keto:2026-08-30", &out); ok {
		t.Error("stale entry must never be served")
	}
}

func TestCachePutReplacesExistingEntry(t *testing.T) {
	setupTestDB(t)

	key := "u1:today:0:cut:2026-08-31"
	if err := CachePut(key, "u1", TodayResult{Recommendation: "old"}); err != nil {
		t.Fatal(err)
	}
	if err := CachePut(key, "u1", TodayResult{Recommendation: "new"}); err != nil {
		t.Fatal(err)
	}

	var out TodayResult
	if _, ok := CacheGet(key, &out); !ok {
		t.Fatal("expected hit")
	}
	if out.Recommendation != "new" {
		t.Errorf("recommendation = %q, want %q", out.Recommendation, "new")
	}

	var count int64
	config.DB.Model(&models.AnalysisCache{}).Where("cache_key = ?", key).Count(&count)
	if count != 1 {
		t.Errorf("rows for key = %d, want 1", count)
	}
}
