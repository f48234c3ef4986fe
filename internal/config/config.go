package config

import (
	"os"
	"strconv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// Game rules. Two rule variants shipped over the app's history;
	// both are kept as configuration of the same state machine.
	ScoringMode         string // "flat" or "modifier_aware"
	TimingMode          string // "timed" or "untimed"
	SessionSeconds      int
	QuestionsPerSession int
	HintBudget          int
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "howyouknow"),
		JWTSecret:  getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		ScoringMode:         getEnv("SCORING_MODE", "flat"),
		TimingMode:          getEnv("TIMING_MODE", "timed"),
		SessionSeconds:      getEnvInt("SESSION_SECONDS", 60),
		QuestionsPerSession: getEnvInt("QUESTIONS_PER_SESSION", 5),
		HintBudget:          getEnvInt("HINT_BUDGET", 3),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
