package main

import (
	"github.com/Tzeak/yumlog/config"
	"github.com/Tzeak/yumlog/logger"
	"github.com/Tzeak/yumlog/routes"
	"github.com/Tzeak/yumlog/storage"

	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Close()

	config.LoadEnv()
	config.InitDB()
	storage.Init()

	r := routes.SetupRouter()

	port := config.GetEnv("PORT", "3001")
	logger.Info("Yumlog server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Error("Server failed", zap.Error(err))
	}
}
