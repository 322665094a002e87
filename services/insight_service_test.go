package services

import (
	"strings"
	"testing"
	"time"

	"github.com/Tzeak/yumlog/models"
	"github.com/Tzeak/yumlog/nutrition"
)

func TestFilterWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	meals := []MealSummary{
		{Date: now.AddDate(0, 0, -10), Calories: 100},
		{Date: now.AddDate(0, 0, -3), Calories: 200},
		{Date: now.Add(-time.Hour), Calories: 300},
	}

	got := FilterWindow(meals, now.AddDate(0, 0, -7), now)
	if len(got) != 2 {
		t.Fatalf("kept %d meals, want 2", len(got))
	}
	if got[0].Calories != 200 || got[1].Calories != 300 {
		t.Errorf("wrong meals kept: %+v", got)
	}
}

func TestComputeGoalStats(t *testing.T) {
	meals := []MealSummary{
		{Calories: 600, Protein: 30, Carbs: 50, Fat: 20},
		{Calories: 400, Protein: 20, Carbs: 30, Fat: 30},
	}

	stats := ComputeGoalStats(meals)
	if stats.RecentMeals != 2 {
		t.Errorf("recentMeals = %d, want 2", stats.RecentMeals)
	}
	if stats.AvgCalories != 500 {
		t.Errorf("avgCalories = %v, want 500", stats.AvgCalories)
	}
	if stats.AvgProtein != 25 {
		t.Errorf("avgProtein = %v, want 25", stats.AvgProtein)
	}
	// protein 50 / (50+80+50) = 27.78%
	if stats.ProteinPercent < 27.7 || stats.ProteinPercent > 27.8 {
		t.Errorf("proteinPercent = %v", stats.ProteinPercent)
	}
}

func TestComputeGoalStatsEmptyWindow(t *testing.T) {
	stats := ComputeGoalStats(nil)
	if stats != (GoalStats{}) {
		t.Errorf("got %+v, want zero stats", stats)
	}
}

func TestSummarizeMeals(t *testing.T) {
	note := "post-run lunch"
	ts := time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC)
	recs := []MealRecord{{
		Timestamp: ts,
		Note:      &note,
		Analysis: nutrition.MealAnalysis{
			TotalCalories: 700,
			TotalProtein:  40,
		},
	}}

	got := SummarizeMeals(recs)
	if len(got) != 1 {
		t.Fatalf("got %d summaries", len(got))
	}
	if got[0].Date != ts || got[0].Calories != 700 || got[0].Protein != 40 || got[0].Note != note {
		t.Errorf("summary = %+v", got[0])
	}
}

func TestBuildGoalPromptIncludesGoalAndMeals(t *testing.T) {
	cal := 1800.0
	goal := &models.Goal{
		Name:               "keto",
		Guidelines:         "Very low carbs, high fat.",
		EvaluationCriteria: "Daily net carbs under 30g.",
		TargetCalories:     &cal,
	}
	meals := []MealSummary{{Date: time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC), Calories: 500, Note: "skipped toast"}}

	prompt := buildGoalPrompt(goal, meals, ComputeGoalStats(meals))

	for _, want := range []string{"keto", "Very low carbs", "Daily net carbs", "1800 kcal", "skipped toast", "Aug 29, 2026"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildTodayPromptHandlesNoMeals(t *testing.T) {
	goal := &models.Goal{Name: "anti-inflammatory", Description: "whole foods"}
	prompt := buildTodayPrompt(goal, nil, TotalsStats{})

	if !strings.Contains(prompt, "(no meals logged yet)") {
		t.Error("prompt should call out the empty day")
	}
	// guidelines fall back to the description when unset
	if !strings.Contains(prompt, "whole foods") {
		t.Error("prompt missing guideline fallback")
	}
}
