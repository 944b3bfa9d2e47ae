package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	envOnce sync.Once
	// Logger reports problems met while the configuration itself is being loaded.
	Logger = logrus.New()
)

// EnvOr returns BUDGETSIM_<key> if set, then <key>, then fallback.
func EnvOr(key, fallback string) string {
	if value, ok := os.LookupEnv(EnvPrefix + "_" + key); ok {
		return value
	}
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ConfigureLogging applies LOG_LEVEL and LOG_FORMAT to the bootstrap logger. The
// prefixed forms win, matching the keys viper reads later for log.level and log.format.
func ConfigureLogging() *logrus.Logger {
	levelName := EnvOr("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", levelName)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if strings.EqualFold(EnvOr("LOG_FORMAT", "text"), "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return Logger
}

// LoadEnv reads .env from the working directory, or its parent, at most once per process.
// Variables already present in the environment are not overridden.
func LoadEnv() {
	envOnce.Do(func() {
		for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := godotenv.Load(candidate); err != nil {
				Logger.Warnf("Error loading %s: %v", candidate, err)
				return
			}
			Logger.Debugf("Loaded environment variables from %s", candidate)
			return
		}
		Logger.Debug("No .env file found, using the process environment")
	})
}
