package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// Init initializes the global logger.
func Init() {
	env := os.Getenv("ENV")
	var err error
	if env == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

// Close flushes the logger buffers.
func Close() {
	_ = Logger.Sync()
}

func Info(msg string, fields ...zapcore.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zapcore.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zapcore.Field) {
	Logger.Error(msg, fields...)
}

// Action appends a line to the user action audit log. Failures here are
// logged and swallowed; audit logging never fails a request.
func Action(phone, action, status string) {
	if phone == "" {
		phone = "unknown user"
	}
	line := fmt.Sprintf("%s %s just did %s", time.Now().UTC().Format(time.RFC3339), phone, action)
	if status != "" {
		line += fmt.Sprintf(" [status: %s]", status)
	}
	line += "\n"

	logDir := os.Getenv("ACTION_LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Printf("action log: %v", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(logDir, "actions.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("action log: %v", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		log.Printf("action log: %v", err)
	}
}
