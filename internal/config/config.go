package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration. The tracker settings mirror
// the original preference screen: one warn and one alert threshold, each
// with its own repeat delay and notification sound.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// AuthEnabled guards mutating API routes behind bearer tokens.
	AuthEnabled bool

	// UpdateIntervalMinutes is the base period between location checks.
	UpdateIntervalMinutes int64

	// CountTravel counts travel time against the daily limits.
	CountTravel bool

	WarnHours        float64
	WarnDelaySeconds int64
	WarnSound        string

	AlertHours        float64
	AlertDelaySeconds int64
	AlertSound        string

	MQTTBroker string
	MQTTTopic  string
}

// Load reads the configuration from the environment
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/travellog.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		AuthEnabled: getBool("AUTH_ENABLED", false),

		UpdateIntervalMinutes: getInt64("UPDATE_INTERVAL_MINUTES", 30),
		CountTravel:           getBool("COUNT_TRAVEL", false),

		WarnHours:        getFloat("WARN_HOURS", 0),
		WarnDelaySeconds: getInt64("WARN_DELAY_SECONDS", 3600),
		WarnSound:        getEnv("WARN_SOUND", ""),

		AlertHours:        getFloat("ALERT_HOURS", 0),
		AlertDelaySeconds: getInt64("ALERT_DELAY_SECONDS", 3600),
		AlertSound:        getEnv("ALERT_SOUND", ""),

		MQTTBroker: getEnv("MQTT_BROKER", ""),
		MQTTTopic:  getEnv("MQTT_TOPIC", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
