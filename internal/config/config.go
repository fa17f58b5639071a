package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string
	AllowedOrigins []string

	// Engine
	EnginePreset    string
	EngineBudget    time.Duration
	EngineMaxBudget time.Duration

	// Decision cache
	RedisURL         string
	RedisPassword    string
	DecisionCache    bool
	DecisionCacheTTL time.Duration

	// Arena
	JWTSecret     string
	ArenaMaxGames int
	ArenaJobTTL   time.Duration
	ArenaWorkers  int
	CleanupEvery  time.Duration

	LogLevel  string
	LogFormat string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Build allowed origins list (localhost + CSV values)
	allowedOrigins := []string{
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", ""); allowedOriginsStr != "" {
		for _, origin := range strings.Split(allowedOriginsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	enginePreset := GetEnv("ENGINE_PRESET", "alphabeta")
	engineBudgetMs := GetEnvAsInt("ENGINE_BUDGET_MS", 0) // 0 keeps each preset's own budget
	engineMaxBudgetMs := GetEnvAsInt("ENGINE_MAX_BUDGET_MS", 5000)

	// Redis stays optional; an empty URL disables the decision cache
	redisURL := GetEnv("REDIS_URL", "")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	cacheEnabled := GetEnvAsBool("DECISION_CACHE_ENABLED", true)
	cacheTTL := GetEnvAsDuration("DECISION_CACHE_TTL_MINUTES", 60, time.Minute)

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")

	AppConfig = &Config{
		Port:             port,
		AllowedOrigins:   allowedOrigins,
		EnginePreset:     enginePreset,
		EngineBudget:     time.Duration(engineBudgetMs) * time.Millisecond,
		EngineMaxBudget:  time.Duration(engineMaxBudgetMs) * time.Millisecond,
		RedisURL:         redisURL,
		RedisPassword:    redisPassword,
		DecisionCache:    cacheEnabled,
		DecisionCacheTTL: cacheTTL,
		JWTSecret:        jwtSecret,
		ArenaMaxGames:    GetEnvAsInt("ARENA_MAX_GAMES", 200),
		ArenaJobTTL:      GetEnvAsDuration("ARENA_JOB_TTL_MINUTES", 30, time.Minute),
		ArenaWorkers:     GetEnvAsInt("ARENA_WORKERS", 4),
		CleanupEvery:     GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 5, time.Minute),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		LogFormat:        GetEnv("LOG_FORMAT", "console"),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).
			Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit.
func GetEnvAsDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(GetEnvAsInt(key, defaultValue)) * unit
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).
			Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}
