package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

func InitLogger() {
	log.SetLevel(parseLevel(GetConfig("LOG_LEVEL")))
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
