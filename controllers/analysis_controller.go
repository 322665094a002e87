package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Tzeak/yumlog/config"
	"github.com/Tzeak/yumlog/logger"
	"github.com/Tzeak/yumlog/nutrition"
	"github.com/Tzeak/yumlog/services"
	"github.com/Tzeak/yumlog/storage"

	"github.com/gin-gonic/gin"
)

const defaultMaxFileSize = 10 << 20 // 10MB

func maxFileSize() int64 {
	if v := config.GetEnv("MAX_FILE_SIZE", ""); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultMaxFileSize
}

// readImage pulls the uploaded meal photo out of the multipart form,
// enforcing the image-only filter and size cap.
func readImage(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, "", fmt.Errorf("no image file provided")
	}
	if fh.Size > maxFileSize() {
		return nil, "", fmt.Errorf("image exceeds maximum file size")
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("only image files are allowed")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFileSize()+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxFileSize() {
		return nil, "", fmt.Errorf("image exceeds maximum file size")
	}
	return data, contentType, nil
}

// composeNote merges the user's note with the model's observations:
// both when both exist, otherwise whichever is present.
func composeNote(userNote, analysisNotes string) *string {
	userNote = strings.TrimSpace(userNote)
	analysisNotes = strings.TrimSpace(analysisNotes)

	var note string
	switch {
	case userNote != "" && analysisNotes != "":
		note = userNote + "\n\nAI Analysis: " + analysisNotes
	case userNote != "":
		note = userNote
	case analysisNotes != "":
		note = analysisNotes
	default:
		return nil
	}
	return &note
}

// parseProvidedAnalysis decodes a client-modified analysis and recomputes
// its totals from the item list. Client totals are never trusted.
func parseProvidedAnalysis(raw string) (nutrition.MealAnalysis, error) {
	var analysis nutrition.MealAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nutrition.MealAnalysis{}, fmt.Errorf("invalid analysis data provided")
	}
	totals := nutrition.SumUnitTotals(analysis.Foods)
	analysis.TotalCalories = totals.Calories
	analysis.TotalProtein = totals.Protein
	analysis.TotalCarbs = totals.Carbs
	analysis.TotalFat = totals.Fat
	analysis.TotalFiber = totals.Fiber
	analysis.TotalSugar = totals.Sugar
	return analysis, nil
}

func analyzeUpload(c *gin.Context) (nutrition.MealAnalysis, error) {
	image, _, err := readImage(c)
	if err != nil {
		return nutrition.MealAnalysis{}, err
	}
	svc := services.NewOpenAIService()
	return svc.AnalyzeImage(image, c.PostForm("ingredient_notes"), c.PostForm("note"))
}

// AnalyzeFoodOnly analyzes an uploaded photo without saving anything.
func AnalyzeFoodOnly(c *gin.Context) {
	analysis, err := analyzeUpload(c)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "no image file") {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": "Failed to analyze food image", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

// AnalyzeFood analyzes an uploaded photo and saves the meal. A client that
// already edited the analysis passes it in the "analysis" form field and
// skips the model call.
func AnalyzeFood(c *gin.Context) {
	userID := c.GetString("userID")

	image, contentType, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var analysis nutrition.MealAnalysis
	if provided := c.PostForm("analysis"); provided != "" {
		analysis, err = parseProvidedAnalysis(provided)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		svc := services.NewOpenAIService()
		analysis, err = svc.AnalyzeImage(image, c.PostForm("ingredient_notes"), c.PostForm("note"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze food image", "details": err.Error()})
			return
		}
	}

	imageName, err := storage.Default().Save(image, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image", "details": err.Error()})
		return
	}

	note := composeNote(c.PostForm("note"), analysis.Notes)
	mealID, err := services.SaveMeal(userID, &imageName, analysis, note, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save meal", "details": err.Error()})
		return
	}

	logger.Action(c.GetString("phoneNumber"), "logged a photo meal", "")
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"mealId":   mealID,
		"analysis": analysis,
		"note":     note,
	})
}

type textAnalysisRequest struct {
	Description string `json:"description"`
	Analysis    string `json:"analysis"`
	Note        string `json:"note"`
}

// AnalyzeTextOnly analyzes a meal description without saving anything.
func AnalyzeTextOnly(c *gin.Context) {
	var req textAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No description provided"})
		return
	}

	svc := services.NewOpenAIService()
	analysis, err := svc.AnalyzeText(strings.TrimSpace(req.Description))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze text description", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

// AnalyzeText analyzes a meal description and saves the resulting meal
// without an image.
func AnalyzeText(c *gin.Context) {
	userID := c.GetString("userID")

	var req textAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No description provided"})
		return
	}

	var analysis nutrition.MealAnalysis
	var err error
	if req.Analysis != "" {
		analysis, err = parseProvidedAnalysis(req.Analysis)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		svc := services.NewOpenAIService()
		analysis, err = svc.AnalyzeText(strings.TrimSpace(req.Description))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze text description", "details": err.Error()})
			return
		}
	}

	note := composeNote(req.Note, analysis.Notes)
	mealID, err := services.SaveMeal(userID, nil, analysis, note, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save meal", "details": err.Error()})
		return
	}

	logger.Action(c.GetString("phoneNumber"), "logged a text meal", "")
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"mealId":   mealID,
		"analysis": analysis,
		"note":     note,
	})
}
