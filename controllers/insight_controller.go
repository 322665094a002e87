package controllers

import (
	"net/http"

	"github.com/Tzeak/yumlog/models"
	"github.com/Tzeak/yumlog/services"

	"github.com/gin-gonic/gin"
)

type insightRequest struct {
	GoalID     uint                   `json:"goalId"`
	Goal       string                 `json:"goal"`
	Guidelines string                 `json:"guidelines"`
	Meals      []services.MealSummary `json:"meals"`
}

// resolveGoal loads the stored goal by id, or builds an ephemeral one from
// the inline name/guidelines (older clients send only those).
func resolveGoal(c *gin.Context, req insightRequest) (*models.Goal, bool) {
	userID := c.GetString("userID")

	if req.GoalID != 0 {
		goal, err := services.GetGoal(userID, req.GoalID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return nil, false
		}
		return goal, true
	}
	if req.Goal == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal or meals data provided"})
		return nil, false
	}
	return &models.Goal{Name: req.Goal, Guidelines: req.Guidelines}, true
}

// resolveMeals uses the caller-provided meal history when present,
// otherwise summarizes everything the user has saved.
func resolveMeals(c *gin.Context, req insightRequest) ([]services.MealSummary, bool) {
	if req.Meals != nil {
		return req.Meals, true
	}
	meals, err := services.ListMeals(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meals"})
		return nil, false
	}
	return services.SummarizeMeals(meals), true
}

// AnalyzeGoal scores the last 7 days of meals against a goal. Results are
// cached for 24 hours per user/goal/day.
func AnalyzeGoal(c *gin.Context) {
	var req insightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal or meals data provided"})
		return
	}

	goal, ok := resolveGoal(c, req)
	if !ok {
		return
	}
	meals, ok := resolveMeals(c, req)
	if !ok {
		return
	}

	result, err := services.AnalyzeGoal(c.GetString("userID"), goal, meals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze goal progress", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"analysis":      result.Analysis,
		"stats":         result.Stats,
		"relevantMeals": result.RelevantMeals,
	})
}

// AnalyzeToday produces rest-of-day advice from today's meals, cached the
// same way as goal analysis.
func AnalyzeToday(c *gin.Context) {
	var req insightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal or meals data provided"})
		return
	}

	goal, ok := resolveGoal(c, req)
	if !ok {
		return
	}
	meals, ok := resolveMeals(c, req)
	if !ok {
		return
	}

	result, err := services.AnalyzeToday(c.GetString("userID"), goal, meals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze today's recommendation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"recommendation": result.Recommendation,
		"todayStats":     result.TodayStats,
	})
}
