package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	GinMode         string
	TokenSecret     string
	TokenHeader     string
	TokenTTLSeconds int
	BcryptCost      int
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "taskuser"),
		DBPassword:      getEnv("DB_PASSWORD", "taskpassword"),
		DBName:          getEnv("DB_NAME", "task_tracker"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		TokenSecret:     getEnv("TOKEN_SECRET", "default-secret-key-change-me"),
		TokenHeader:     getEnv("TOKEN_HEADER", "x-access-token"),
		TokenTTLSeconds: getEnvInt("TOKEN_TTL_SECONDS", 1800),
		BcryptCost:      getEnvInt("SALT_FACTOR", 10),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
