package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServiceName string
	Environment string

	ServerPort int

	DatabaseURL string

	JWTAccessSecret []byte

	XenditAPIKey        string
	XenditBaseURL       string
	XenditCallbackToken string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "pos"),
		Environment: EnvDefault("ENVIRONMENT", "development"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),

		XenditAPIKey:        os.Getenv("XENDIT_API_KEY"),
		XenditBaseURL:       EnvDefault("XENDIT_BASE_URL", "https://api.xendit.co"),
		XenditCallbackToken: os.Getenv("XENDIT_CALLBACK_TOKEN"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
