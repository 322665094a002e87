package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Tzeak/yumlog/models"
)

// MealSummary is the condensed per-meal view fed into goal prompts.
type MealSummary struct {
	Date     time.Time `json:"date"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	Fiber    float64   `json:"fiber"`
	Sugar    float64   `json:"sugar"`
	Note     string    `json:"note"`
}

// GoalStats summarizes a window of meals: averages and macro split.
type GoalStats struct {
	RecentMeals    int     `json:"recentMeals"`
	AvgCalories    float64 `json:"avgCalories"`
	AvgProtein     float64 `json:"avgProtein"`
	AvgCarbs       float64 `json:"avgCarbs"`
	AvgFat         float64 `json:"avgFat"`
	ProteinPercent float64 `json:"proteinPercent"`
	CarbsPercent   float64 `json:"carbsPercent"`
	FatPercent     float64 `json:"fatPercent"`
}

// GoalProgressResult is what /api/analyze-goal returns (and caches).
type GoalProgressResult struct {
	Analysis      *GoalInsight  `json:"analysis"`
	Stats         GoalStats     `json:"stats"`
	RelevantMeals []MealSummary `json:"relevantMeals"`
}

// TodayResult is what /api/analyze-today returns (and caches).
type TodayResult struct {
	Recommendation string      `json:"recommendation"`
	TodayStats     TotalsStats `json:"todayStats"`
}

// TotalsStats is one day's summed intake for the today prompt.
type TotalsStats struct {
	Meals         int     `json:"meals"`
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	TotalFiber    float64 `json:"totalFiber"`
	TotalSugar    float64 `json:"totalSugar"`
}

// SummarizeMeals flattens meal records to prompt-ready summaries.
func SummarizeMeals(meals []MealRecord) []MealSummary {
	out := make([]MealSummary, 0, len(meals))
	for _, m := range meals {
		note := ""
		if m.Note != nil {
			note = *m.Note
		}
		out = append(out, MealSummary{
			Date:     m.Timestamp,
			Calories: m.Analysis.TotalCalories,
			Protein:  m.Analysis.TotalProtein,
			Carbs:    m.Analysis.TotalCarbs,
			Fat:      m.Analysis.TotalFat,
			Fiber:    m.Analysis.TotalFiber,
			Sugar:    m.Analysis.TotalSugar,
			Note:     note,
		})
	}
	return out
}

// FilterWindow keeps summaries with dates in [from, to).
func FilterWindow(meals []MealSummary, from, to time.Time) []MealSummary {
	out := make([]MealSummary, 0, len(meals))
	for _, m := range meals {
		if !m.Date.Before(from) && m.Date.Before(to) {
			out = append(out, m)
		}
	}
	return out
}

// ComputeGoalStats derives averages and the macro split for a meal window.
func ComputeGoalStats(meals []MealSummary) GoalStats {
	stats := GoalStats{RecentMeals: len(meals)}
	if len(meals) == 0 {
		return stats
	}

	var cals, prot, carbs, fat float64
	for _, m := range meals {
		cals += m.Calories
		prot += m.Protein
		carbs += m.Carbs
		fat += m.Fat
	}

	n := float64(len(meals))
	stats.AvgCalories = cals / n
	stats.AvgProtein = prot / n
	stats.AvgCarbs = carbs / n
	stats.AvgFat = fat / n

	if total := prot + carbs + fat; total > 0 {
		stats.ProteinPercent = prot / total * 100
		stats.CarbsPercent = carbs / total * 100
		stats.FatPercent = fat / total * 100
	}
	return stats
}

func sumTotals(meals []MealSummary) TotalsStats {
	t := TotalsStats{Meals: len(meals)}
	for _, m := range meals {
		t.TotalCalories += m.Calories
		t.TotalProtein += m.Protein
		t.TotalCarbs += m.Carbs
		t.TotalFat += m.Fat
		t.TotalFiber += m.Fiber
		t.TotalSugar += m.Sugar
	}
	return t
}

// AnalyzeGoal scores the user's last 7 days of meals against a goal,
// serving a cached result when one is fresh.
func AnalyzeGoal(userID string, goal *models.Goal, meals []MealSummary) (*GoalProgressResult, error) {
	key := cacheKey(userID, "goal", goal.ID, goal.Name)

	var cached GoalProgressResult
	if _, ok := CacheGet(key, &cached); ok {
		return &cached, nil
	}

	now := time.Now()
	recent := FilterWindow(meals, now.AddDate(0, 0, -7), now.Add(time.Minute))
	stats := ComputeGoalStats(recent)

	insight, err := NewOpenAIService().AnalyzeGoalProgress(buildGoalPrompt(goal, recent, stats))
	if err != nil {
		return nil, err
	}

	result := &GoalProgressResult{
		Analysis:      insight,
		Stats:         stats,
		RelevantMeals: recent,
	}
	_ = CachePut(key, userID, result)
	return result, nil
}

// AnalyzeToday produces rest-of-day advice from today's meals, cached the
// same way.
func AnalyzeToday(userID string, goal *models.Goal, meals []MealSummary) (*TodayResult, error) {
	key := cacheKey(userID, "today", goal.ID, goal.Name)

	var cached TodayResult
	if _, ok := CacheGet(key, &cached); ok {
		return &cached, nil
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today := FilterWindow(meals, start, start.Add(24*time.Hour))
	totals := sumTotals(today)

	insight, err := NewOpenAIService().AnalyzeTodayRecommendation(buildTodayPrompt(goal, today, totals))
	if err != nil {
		return nil, err
	}

	result := &TodayResult{
		Recommendation: insight.Recommendation,
		TodayStats:     totals,
	}
	_ = CachePut(key, userID, result)
	return result, nil
}

// cacheKey scopes entries per user, kind, goal, and calendar day, so a new
// day starts fresh while same-day entries live out the 24h window.
func cacheKey(userID, kind string, goalID uint, goalName string) string {
	return fmt.Sprintf("%s:%s:%d:%s:%s",
		userID, kind, goalID, goalName, time.Now().Format("2006-01-02"))
}

func goalGuidelines(goal *models.Goal) string {
	if goal.Guidelines != "" {
		return goal.Guidelines
	}
	return goal.Description
}

func buildGoalPrompt(goal *models.Goal, meals []MealSummary, stats GoalStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this user's recent meals for compliance with their %q goal:\n\n", goal.Name)
	fmt.Fprintf(&sb, "Recent meals (%d meals in last 7 days):\n", stats.RecentMeals)
	fmt.Fprintf(&sb, "- Average calories: %.0f\n", stats.AvgCalories)
	fmt.Fprintf(&sb, "- Average protein: %.1fg\n", stats.AvgProtein)
	fmt.Fprintf(&sb, "- Average carbs: %.1fg\n", stats.AvgCarbs)
	fmt.Fprintf(&sb, "- Average fat: %.1fg\n", stats.AvgFat)
	fmt.Fprintf(&sb, "- Macro breakdown: %.1f%% protein, %.1f%% carbs, %.1f%% fat\n\n",
		stats.ProteinPercent, stats.CarbsPercent, stats.FatPercent)

	sb.WriteString("Recent meal details:\n")
	writeMealLines(&sb, meals, "Jan 2, 2006")

	fmt.Fprintf(&sb, "\nGoal guidelines:\n%s\n", goalGuidelines(goal))
	if goal.EvaluationCriteria != "" {
		fmt.Fprintf(&sb, "\nEvaluation criteria:\n%s\n", goal.EvaluationCriteria)
	}
	writeTargets(&sb, goal)

	sb.WriteString(`
Provide a casual, conversational assessment that includes:

- Overall trend (improving, declining, or maintaining)
- 2-3 specific meals that were good choices for this goal and 2-3 meals that need improvement (reference the meal dates above)
- 3-4 actionable steps they can take to improve compliance
- Positive reinforcement for what they're doing well

Write like you're talking to a friend. Be specific about which meals were good/bad and why.`)
	return sb.String()
}

func buildTodayPrompt(goal *models.Goal, meals []MealSummary, totals TotalsStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze this user's meals for TODAY against their %q goal and provide specific advice for the rest of the day:\n\n", goal.Name)
	fmt.Fprintf(&sb, "Today's meals so far (%d meals):\n", totals.Meals)
	fmt.Fprintf(&sb, "- Total calories: %.0f\n", totals.TotalCalories)
	fmt.Fprintf(&sb, "- Total protein: %.1fg\n", totals.TotalProtein)
	fmt.Fprintf(&sb, "- Total carbs: %.1fg\n", totals.TotalCarbs)
	fmt.Fprintf(&sb, "- Total fat: %.1fg\n", totals.TotalFat)
	fmt.Fprintf(&sb, "- Total fiber: %.1fg\n", totals.TotalFiber)
	fmt.Fprintf(&sb, "- Total sugar: %.1fg\n\n", totals.TotalSugar)

	sb.WriteString("Today's meal details:\n")
	writeMealLines(&sb, meals, "3:04 PM")

	fmt.Fprintf(&sb, "\nGoal guidelines:\n%s\n", goalGuidelines(goal))
	writeTargets(&sb, goal)

	sb.WriteString(`
Provide a casual, conversational recommendation that includes how they're doing so far today, 2-3 specific foods/meals they should eat for the rest of today, what they should avoid for the rest of today, and why these suggestions will help them stay on track.

Write like you're talking to a friend. Keep it short and concise. Don't use markdown formatting.`)
	return sb.String()
}

func writeMealLines(sb *strings.Builder, meals []MealSummary, dateLayout string) {
	if len(meals) == 0 {
		sb.WriteString("- (no meals logged yet)\n")
		return
	}
	for _, m := range meals {
		fmt.Fprintf(sb, "- %s: %.0f cal, %.1fg protein, %.1fg carbs, %.1fg fat",
			m.Date.Format(dateLayout), m.Calories, m.Protein, m.Carbs, m.Fat)
		if m.Note != "" {
			fmt.Fprintf(sb, " (Note: %s)", m.Note)
		}
		sb.WriteString("\n")
	}
}

func writeTargets(sb *strings.Builder, goal *models.Goal) {
	var parts []string
	if goal.TargetCalories != nil {
		parts = append(parts, fmt.Sprintf("%.0f kcal", *goal.TargetCalories))
	}
	if goal.TargetProtein != nil {
		parts = append(parts, fmt.Sprintf("%.0fg protein", *goal.TargetProtein))
	}
	if goal.TargetCarbs != nil {
		parts = append(parts, fmt.Sprintf("%.0fg carbs", *goal.TargetCarbs))
	}
	if goal.TargetFat != nil {
		parts = append(parts, fmt.Sprintf("%.0fg fat", *goal.TargetFat))
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "\nDaily targets: %s\n", strings.Join(parts, ", "))
	}
}
