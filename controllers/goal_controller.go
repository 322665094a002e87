package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Tzeak/yumlog/logger"
	"github.com/Tzeak/yumlog/services"

	"github.com/gin-gonic/gin"
)

func ListGoals(c *gin.Context) {
	userID := c.GetString("userID")

	goals, err := services.ListGoals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch goals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func GetGoal(c *gin.Context) {
	userID := c.GetString("userID")

	goalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	goal, err := services.GetGoal(userID, uint(goalID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func CreateGoal(c *gin.Context) {
	userID := c.GetString("userID")

	var in services.GoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.CreateGoal(userID, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal"})
		return
	}

	logger.Action(c.GetString("phoneNumber"), "created goal "+goal.Name, "")
	c.JSON(http.StatusCreated, gin.H{"success": true, "goalId": goal.ID, "goal": goal})
}

func UpdateGoal(c *gin.Context) {
	userID := c.GetString("userID")

	goalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	var in services.GoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.UpdateGoal(userID, uint(goalID), in)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Failed to update goal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "goal": goal})
}

func DeleteGoal(c *gin.Context) {
	userID := c.GetString("userID")

	goalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	if err := services.DeleteGoal(userID, uint(goalID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Failed to delete goal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GenerateGoal drafts a structured goal from a free-text description. The
// draft is returned for review, not saved.
func GenerateGoal(c *gin.Context) {
	var req struct {
		GoalDescription string `json:"goalDescription"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.GoalDescription) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No goal description provided"})
		return
	}

	svc := services.NewOpenAIService()
	draft, err := svc.GenerateGoal(strings.TrimSpace(req.GoalDescription))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate goal guidelines", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "goal": draft})
}
