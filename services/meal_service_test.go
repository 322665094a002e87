package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tzeak/yumlog/nutrition"
	"github.com/Tzeak/yumlog/storage"
)

func setupTestStorage(t *testing.T) *storage.LocalStore {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("create test store: %v", err)
	}
	prev := storage.Default()
	storage.SetDefault(store)
	t.Cleanup(func() { storage.SetDefault(prev) })
	return store
}

func sampleAnalysis() nutrition.MealAnalysis {
	return nutrition.MealAnalysis{
		Foods: []nutrition.FoodItem{
			{Name: "oatmeal", EstimatedQuantity: "1 bowl", Calories: 350, Protein: 12, Carbs: 60, Fat: 6},
		},
		TotalCalories: 350,
		TotalProtein:  12,
		TotalCarbs:    60,
		TotalFat:      6,
		MealType:      "breakfast",
	}
}

func TestSaveAndListMeals(t *testing.T) {
	setupTestDB(t)
	setupTestStorage(t)

	note := "quick breakfast"
	id, err := SaveMeal("u1", nil, sampleAnalysis(), &note, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Fatal("expected a meal id")
	}

	meals, err := ListMeals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(meals) != 1 {
		t.Fatalf("got %d meals, want 1", len(meals))
	}
	got := meals[0]
	if got.ID != id {
		t.Errorf("id = %d, want %d", got.ID, id)
	}
	if got.Analysis.TotalCalories != 350 || len(got.Analysis.Foods) != 1 {
		t.Errorf("analysis did not round-trip: %+v", got.Analysis)
	}
	if got.Note == nil || *got.Note != note {
		t.Errorf("note = %v", got.Note)
	}
	if got.ImageURL != nil {
		t.Errorf("imageUrl = %v, want nil for a text meal", *got.ImageURL)
	}
}

func TestListMealsScopedToUser(t *testing.T) {
	setupTestDB(t)
	setupTestStorage(t)

	if _, err := SaveMeal("u1", nil, sampleAnalysis(), nil, time.Now()); err != nil {
		t.Fatal(err)
	}
	if _, err := SaveMeal("u2", nil, sampleAnalysis(), nil, time.Now()); err != nil {
		t.Fatal(err)
	}

	meals, err := ListMeals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(meals) != 1 {
		t.Errorf("u1 sees %d meals, want 1", len(meals))
	}
}

func TestMealRecordCarriesImageURL(t *testing.T) {
	setupTestDB(t)
	store := setupTestStorage(t)

	name, err := store.Save([]byte("jpeg bytes"), "image/jpeg")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := SaveMeal("u1", &name, sampleAnalysis(), nil, time.Now()); err != nil {
		t.Fatal(err)
	}

	meals, err := ListMeals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if meals[0].ImageURL == nil || *meals[0].ImageURL != "/uploads/"+name {
		t.Errorf("imageUrl = %v", meals[0].ImageURL)
	}
}

func TestDeleteMealRemovesRowAndImage(t *testing.T) {
	setupTestDB(t)
	store := setupTestStorage(t)

	name, err := store.Save([]byte("jpeg bytes"), "image/jpeg")
	if err != nil {
		t.Fatal(err)
	}
	id, err := SaveMeal("u1", &name, sampleAnalysis(), nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if err := DeleteMeal("u1", id); err != nil {
		t.Fatal(err)
	}

	meals, err := ListMeals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(meals) != 0 {
		t.Errorf("meal still listed after delete")
	}

	path, err := store.Path(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("image file still on disk: %v", err)
	}
}

func TestDeleteMealRejectsOtherUsers(t *testing.T) {
	setupTestDB(t)
	setupTestStorage(t)

	id, err := SaveMeal("u1", nil, sampleAnalysis(), nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if err := DeleteMeal("u2", id); err == nil {
		t.Fatal("expected error deleting someone else's meal")
	}
	meals, _ := ListMeals("u1")
	if len(meals) != 1 {
		t.Errorf("meal was deleted across users")
	}
}

func TestDeleteMealToleratesMissingImage(t *testing.T) {
	setupTestDB(t)
	store := setupTestStorage(t)

	name, err := store.Save([]byte("jpeg bytes"), "image/jpeg")
	if err != nil {
		t.Fatal(err)
	}
	id, err := SaveMeal("u1", &name, sampleAnalysis(), nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	path, _ := store.Path(name)
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	if err := DeleteMeal("u1", id); err != nil {
		t.Errorf("delete failed over an already-missing image: %v", err)
	}
}

func TestGetDailyStats(t *testing.T) {
	setupTestDB(t)
	setupTestStorage(t)

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	lunch := sampleAnalysis()
	if _, err := SaveMeal("u1", nil, lunch, nil, day.Add(12*time.Hour)); err != nil {
		t.Fatal(err)
	}
	dinner := sampleAnalysis()
	dinner.TotalCalories = 650
	dinner.TotalProtein = 40
	if _, err := SaveMeal("u1", nil, dinner, nil, day.Add(19*time.Hour)); err != nil {
		t.Fatal(err)
	}
	// yesterday's meal must not count
	if _, err := SaveMeal("u1", nil, sampleAnalysis(), nil, day.Add(-5*time.Hour)); err != nil {
		t.Fatal(err)
	}

	stats, err := GetDailyStats("u1", day)
	if err != nil {
		t.Fatal(err)
	}
	if stats.MealCount != 2 {
		t.Errorf("mealCount = %d, want 2", stats.MealCount)
	}
	if stats.TotalCalories != 1000 {
		t.Errorf("totalCalories = %v, want 1000", stats.TotalCalories)
	}
	if stats.TotalProtein != 52 {
		t.Errorf("totalProtein = %v, want 52", stats.TotalProtein)
	}
}

func TestGetDailyStatsEmptyDay(t *testing.T) {
	setupTestDB(t)
	setupTestStorage(t)

	stats, err := GetDailyStats("u1", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if stats.MealCount != 0 || stats.TotalCalories != 0 {
		t.Errorf("got %+v, want zeros", stats)
	}
}

func TestListMealsByDateRange(t *testing.T) {
	setupTestDB(t)
	setupTestStorage(t)

	base := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := SaveMeal("u1", nil, sampleAnalysis(), nil, base.AddDate(0, 0, i)); err != nil {
			t.Fatal(err)
		}
	}

	meals, err := ListMealsByDateRange("u1", base, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(meals) != 2 {
		t.Fatalf("got %d meals in range, want 2", len(meals))
	}
	if !meals[0].Timestamp.After(meals[1].Timestamp) {
		t.Error("meals not ordered newest first")
	}
}

func TestSaveMealPersistsAnalysisVerbatim(t *testing.T) {
	setupTestDB(t)
	setupTestStorage(t)

	analysis := sampleAnalysis()
	analysis.Foods[0].ServingMultiplier = 2.5
	analysis.Foods[0].Confidence = nutrition.ConfidenceHigh

	if _, err := SaveMeal("u1", nil, analysis, nil, time.Now()); err != nil {
		t.Fatal(err)
	}

	meals, err := ListMeals("u1")
	if err != nil {
		t.Fatal(err)
	}
	food := meals[0].Analysis.Foods[0]
	if food.ServingMultiplier != 2.5 {
		t.Errorf("servingMultiplier = %v, want 2.5", food.ServingMultiplier)
	}
	if food.Confidence != nutrition.ConfidenceHigh {
		t.Errorf("confidence = %q", food.Confidence)
	}
}

func TestStoredImageNameJoinsSafely(t *testing.T) {
	store := setupTestStorage(t)

	name, err := store.Save([]byte("x"), "image/png")
	if err != nil {
		t.Fatal(err)
	}
	path, err := store.Path(name)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != name {
		t.Errorf("path %q does not end in stored name %q", path, name)
	}
}
