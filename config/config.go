package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	HTTPPort int

	// Outbound channel configuration
	Channels ChannelConfig

	// Trade card configuration
	Card CardConfig

	// Entry price cache configuration
	EntryCacheBackend  string // "memory" or "redis"
	EntryCacheTTLHours int

	// Redis configuration (used when EntryCacheBackend is "redis")
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Database configuration (optional alert/delivery persistence,
	// enabled only when DB_HOST is set)
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
}

// ChannelConfig holds per-channel webhook settings
type ChannelConfig struct {
	DingTalkWebhook string
	RelayServiceURL string
	UseRelayService bool
	SendToDingTalk  bool

	KookFunctionURL      string
	SendToKook           bool
	DefaultKookChannelID string

	DiscordWebhookURL string
	SendToDiscord     bool
	DiscordUseEmbeds  bool
}

// CardConfig holds trade card rendering parameters
type CardConfig struct {
	ImageBaseURL   string
	DefaultCapital float64
	Leverage       int
	FontPath       string // TTF with CJK glyphs; built-in Go fonts cover latin/digits only
	BackgroundPath string // optional background PNG, solid fill when empty
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		Channels: ChannelConfig{
			DingTalkWebhook: getEnvOrDefault("DINGTALK_WEBHOOK", ""),
			RelayServiceURL: getEnvOrDefault("RELAY_SERVICE_URL", ""),
			UseRelayService: getEnvOrDefault("USE_RELAY_SERVICE", "false") == "true",
			SendToDingTalk:  getEnvOrDefault("SEND_TO_DINGTALK", "true") == "true",

			KookFunctionURL:      getEnvOrDefault("TENCENT_CLOUD_KOOK_URL", ""),
			SendToKook:           getEnvOrDefault("SEND_TO_KOOK", "false") == "true",
			DefaultKookChannelID: getEnvOrDefault("DEFAULT_KOOK_CHANNEL_ID", "3152587560978791"),

			DiscordWebhookURL: getEnvOrDefault("DISCORD_WEBHOOK_URL", ""),
			SendToDiscord:     getEnvOrDefault("SEND_TO_DISCORD", "false") == "true",
			DiscordUseEmbeds:  getEnvOrDefault("DISCORD_USE_EMBEDS", "false") == "true",
		},

		Card: CardConfig{
			ImageBaseURL:   getEnvOrDefault("IMAGE_BASE_URL", "http://localhost:8080"),
			DefaultCapital: getEnvFloat("DEFAULT_CAPITAL", 1000),
			Leverage:       getEnvInt("CARD_LEVERAGE", 30),
			FontPath:       getEnvOrDefault("CARD_FONT_PATH", ""),
			BackgroundPath: getEnvOrDefault("CARD_BACKGROUND_PATH", ""),
		},

		EntryCacheBackend:  getEnvOrDefault("ENTRY_CACHE_BACKEND", "memory"),
		EntryCacheTTLHours: getEnvInt("ENTRY_CACHE_TTL_HOURS", 24),

		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		DatabaseHost:     getEnvOrDefault("DB_HOST", ""),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "tv_alert_relay"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "relay"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", ""),
	}
}

// PersistenceEnabled reports whether alert/delivery persistence is configured
func (c *Config) PersistenceEnabled() bool {
	return c.DatabaseHost != ""
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat gets environment variable as float64 or returns default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var floatValue float64
	if _, err := fmt.Sscanf(value, "%f", &floatValue); err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
