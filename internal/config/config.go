package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// BackendChain is the ordered storage fallback chain, e.g.
	// "postgres,file". Recognized entries: postgres, redis, file, memory.
	BackendChain []string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr string
	RedisKey  string

	BoardFile string

	DebounceMs int
	LogLevel   string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		BackendChain: splitChain(getEnv("BACKEND_CHAIN", "postgres,file")),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "taskboard_user"),
		DBPassword:   getEnv("DB_PASSWORD", "taskboard_pass"),
		DBName:       getEnv("DB_NAME", "taskboard_db"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisKey:     getEnv("REDIS_KEY", "taskboard:board"),
		BoardFile:    getEnv("BOARD_FILE", "data/kanban.json"),
		DebounceMs:   getEnvInt("SAVE_DEBOUNCE_MS", 500),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid value for %s: %q, using %d", key, value, defaultVal)
		return defaultVal
	}
	return n
}

func splitChain(raw string) []string {
	var chain []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" {
			chain = append(chain, part)
		}
	}
	return chain
}
