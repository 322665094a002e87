package routes

import (
	"strings"

	"github.com/Tzeak/yumlog/config"
	"github.com/Tzeak/yumlog/controllers"
	"github.com/Tzeak/yumlog/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = strings.Split(
		config.GetEnv("CORS_ORIGINS", "http://localhost:3000"), ",")
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	// Public routes
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK", "message": "Yumlog API is running"})
	})
	r.GET("/uploads/:filename", controllers.ServeUpload)
	r.POST("/log-action", controllers.LogAction)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/analyze-food-only", controllers.AnalyzeFoodOnly)
		api.POST("/analyze-food", controllers.AnalyzeFood)
		api.POST("/analyze-text-only", controllers.AnalyzeTextOnly)
		api.POST("/analyze-text", controllers.AnalyzeText)

		api.POST("/analyze-goal", controllers.AnalyzeGoal)
		api.POST("/analyze-today", controllers.AnalyzeToday)
		api.POST("/generate-goal", controllers.GenerateGoal)

		api.GET("/meals", controllers.ListMeals)
		api.DELETE("/meals/:id", controllers.DeleteMeal)
		api.GET("/stats/daily", controllers.GetDailyStats)

		api.GET("/goals", controllers.ListGoals)
		api.POST("/goals", controllers.CreateGoal)
		api.GET("/goals/:id", controllers.GetGoal)
		api.PUT("/goals/:id", controllers.UpdateGoal)
		api.DELETE("/goals/:id", controllers.DeleteGoal)

		api.GET("/user/profile", controllers.GetProfile)
	}

	return r
}
