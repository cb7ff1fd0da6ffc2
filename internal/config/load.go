package config

import "github.com/fazrilrizki/simple-pos/pkg/config"

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.XenditAPIKey, "XENDIT_API_KEY")
	config.MustNonEmpty(cfg.XenditCallbackToken, "XENDIT_CALLBACK_TOKEN")

	return ServiceConfig{Config: cfg}
}
