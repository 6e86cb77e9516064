package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// New snapshots the process environment into a plain map. The snapshot is
// taken once at startup and passed down explicitly; nothing reads os.Getenv
// after boot.
func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}

	return asBool
}

// DatabaseDSN assembles the postgres connection string from the DATABASE_*
// keys.
func DatabaseDSN(config map[string]string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		GetString(config, "DATABASE_HOST", "localhost"),
		GetString(config, "DATABASE_USER", "postgres"),
		GetString(config, "DATABASE_PASSWORD", ""),
		GetString(config, "DATABASE_NAME", "portfolio"),
		GetString(config, "DATABASE_PORT", "5432"),
		GetString(config, "DATABASE_SSLMODE", "disable"),
	)
}
