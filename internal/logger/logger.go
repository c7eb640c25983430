package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the application logger. Production JSON output by
// default; set LOG_MODE=development for human-readable console logs.
func New() (*zap.Logger, error) {
	if os.Getenv("LOG_MODE") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
