package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Tzeak/yumlog/logger"
	"github.com/Tzeak/yumlog/services"

	"github.com/gin-gonic/gin"
)

// ListMeals returns all of the user's meals, newest first.
func ListMeals(c *gin.Context) {
	userID := c.GetString("userID")

	meals, err := services.ListMeals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// DeleteMeal removes a meal (and its stored image) if the user owns it.
func DeleteMeal(c *gin.Context) {
	userID := c.GetString("userID")

	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := services.DeleteMeal(userID, uint(mealID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Failed to delete meal"})
		return
	}

	logger.Action(c.GetString("phoneNumber"), "deleted a meal", "")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meal deleted successfully"})
}

// GetDailyStats sums the day's saved totals. Defaults to today; accepts
// ?date=YYYY-MM-DD.
func GetDailyStats(c *gin.Context) {
	userID := c.GetString("userID")

	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	stats, err := services.GetDailyStats(userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
