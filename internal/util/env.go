package util

import (
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of the environment variable with the given key,
// or defaultVal if the variable is unset or empty.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}

	return defaultVal
}

// GetEnvAsInt returns the environment variable parsed as int,
// or defaultVal if unset or unparseable.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")

	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsBool returns the environment variable parsed as bool,
// or defaultVal if unset or unparseable.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsDuration returns the environment variable parsed via
// time.ParseDuration, or defaultVal if unset or unparseable.
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	strVal := GetEnv(key, "")

	if val, err := time.ParseDuration(strVal); err == nil {
		return val
	}

	return defaultVal
}
