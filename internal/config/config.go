package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	HTTPAddr    string
	DatabaseDSN string
	RedisAddr   string

	FeedURL   string
	JWTSecret string

	TelegramBotToken string
	TelegramChatID   int64
}

// Load reads the .env file (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		DatabaseDSN:      mustGetenv("DATABASE_DSN"),
		RedisAddr:        getenv("REDIS_ADDR", ""),
		FeedURL:          mustGetenv("FEED_URL"),
		JWTSecret:        mustGetenv("JWT_SECRET"),
		TelegramBotToken: getenv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getenvInt64("TELEGRAM_CHAT_ID"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}

func getenvInt64(key string) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
