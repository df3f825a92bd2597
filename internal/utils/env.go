package utils

import (
	"os"
	"strconv"

	"github.com/tecsup/autobody-backend/internal/logger"
)

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	log = log.With("env_var", key)
	val, ok := os.LookupEnv(key)
	if !ok {
		log.Debug("Environment variable not found, using default", "default", defaultVal)
		return defaultVal
	}
	log.Debug("Environment variable found, using environment", "environment", val)
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	log = log.With("env_var", key)
	valStr, ok := os.LookupEnv(key)
	if !ok {
		log.Debug("Environment variable not found, using default", "default", defaultVal)
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		log.Debug("Environment variable could not be parsed as int, using default", "providedVal", valStr, "defaultVal", defaultVal, "error", err)
		return defaultVal
	}
	log.Debug("Environment variable found, using it", "value", i)
	return i
}
