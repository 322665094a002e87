package controllers

import (
	"net/http"
	"os"

	"github.com/Tzeak/yumlog/logger"
	"github.com/Tzeak/yumlog/storage"

	"github.com/gin-gonic/gin"
)

// ServeUpload streams a stored meal image. Only the local backend serves
// through the app; S3-backed images are fetched straight from the CDN.
func ServeUpload(c *gin.Context) {
	local, ok := storage.Default().(*storage.LocalStore)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	path, err := local.Path(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	c.File(path)
}

// LogAction appends a client-reported action to the audit log.
func LogAction(c *gin.Context) {
	var req struct {
		Phone  string `json:"phone"`
		Action string `json:"action"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	logger.Action(req.Phone, req.Action, req.Status)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
