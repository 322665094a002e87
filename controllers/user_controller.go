package controllers

import (
	"net/http"

	"github.com/Tzeak/yumlog/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := services.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
