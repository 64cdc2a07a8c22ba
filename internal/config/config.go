package config

// Config represents the application configuration
type Config struct {
	Telegram TelegramConfig
	Panel    PanelConfig
	Storage  StorageConfig
	LogLevel string
}

// TelegramConfig holds the Telegram bot configuration
type TelegramConfig struct {
	Token            string
	AdminIDs         []int64
	BroadcastDelayMs int
}

// PanelConfig holds the configuration for the 3x-ui panel
type PanelConfig struct {
	BaseURL  string
	Username string
	Password string
}

// StorageConfig holds the local user store configuration
type StorageConfig struct {
	UsersFile string
}
