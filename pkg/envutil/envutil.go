// Package envutil provides typed accessors for environment variables with
// defaults and range validation.
package envutil

import (
	"os"
	"strconv"
	"time"

	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

// GetIntFromEnv reads an integer from the named environment variable.
// It returns defaultValue when the variable is unset, not a valid integer,
// or outside [minValue, maxValue]. A nil log is allowed.
func GetIntFromEnv(envVar string, defaultValue, minValue, maxValue int, log *logger.Logger) int {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Printf("Ignoring %s=%q: not a valid integer", envVar, raw)
		}
		return defaultValue
	}

	if value < minValue || value > maxValue {
		if log != nil {
			log.Printf("Ignoring %s=%d: outside valid range [%d, %d]", envVar, value, minValue, maxValue)
		}
		return defaultValue
	}

	return value
}

// GetDurationFromEnv reads a time.Duration (Go duration syntax, e.g. "30s")
// from the named environment variable. It returns defaultValue when the
// variable is unset, unparsable, or not positive. A nil log is allowed.
func GetDurationFromEnv(envVar string, defaultValue time.Duration, log *logger.Logger) time.Duration {
	raw := os.Getenv(envVar)
	if raw == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		if log != nil {
			log.Printf("Ignoring %s=%q: not a valid positive duration", envVar, raw)
		}
		return defaultValue
	}

	return value
}
