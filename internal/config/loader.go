package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"xui-sub-bot/internal/constants"
	apperrors "xui-sub-bot/internal/errors"
)

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("log_level", "info")
	v.SetDefault("USERS_FILE", "users.json")
	v.SetDefault("BROADCAST_DELAY_MS", constants.DefaultBroadcastDelayMs)

	// Define environment variables
	v.BindEnv("TG_TOKEN")
	v.BindEnv("TG_ADMIN_IDS")
	v.BindEnv("PANEL_BASE_URL")
	v.BindEnv("PANEL_USERNAME")
	v.BindEnv("PANEL_PASSWORD")
	v.BindEnv("USERS_FILE")
	v.BindEnv("BROADCAST_DELAY_MS")

	cfg := &Config{
		LogLevel: v.GetString("log_level"),
		Telegram: TelegramConfig{
			Token:            v.GetString("TG_TOKEN"),
			BroadcastDelayMs: v.GetInt("BROADCAST_DELAY_MS"),
		},
		Panel: PanelConfig{
			BaseURL:  strings.TrimRight(strings.TrimSpace(v.GetString("PANEL_BASE_URL")), "/"),
			Username: strings.TrimSpace(v.GetString("PANEL_USERNAME")),
			Password: strings.TrimSpace(v.GetString("PANEL_PASSWORD")),
		},
		Storage: StorageConfig{
			UsersFile: v.GetString("USERS_FILE"),
		},
	}

	// Parse admin IDs
	adminIDsStr := v.GetString("TG_ADMIN_IDS")
	if adminIDsStr != "" {
		adminIDsSlice := strings.Split(adminIDsStr, ",")
		adminIDs := make([]int64, 0, len(adminIDsSlice))
		for _, idStr := range adminIDsSlice {
			var id int64
			if _, err := fmt.Sscanf(strings.TrimSpace(idStr), "%d", &id); err == nil {
				adminIDs = append(adminIDs, id)
			}
		}
		cfg.Telegram.AdminIDs = adminIDs
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return &apperrors.ConfigError{Section: "telegram", Message: "TG_TOKEN is required"}
	}
	if cfg.Panel.BaseURL == "" {
		return &apperrors.ConfigError{Section: "panel", Message: "PANEL_BASE_URL is required"}
	}
	if cfg.Panel.Username == "" {
		return &apperrors.ConfigError{Section: "panel", Message: "PANEL_USERNAME is required"}
	}
	if cfg.Panel.Password == "" {
		return &apperrors.ConfigError{Section: "panel", Message: "PANEL_PASSWORD is required"}
	}
	if cfg.Telegram.BroadcastDelayMs < 0 {
		return &apperrors.ConfigError{Section: "telegram", Message: "BROADCAST_DELAY_MS must not be negative"}
	}

	return nil
}
