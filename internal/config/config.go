package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT"`
	LogLevel                      string        `mapstructure:"LOG_LEVEL"`
	SiteName                      string        `mapstructure:"SITE_NAME"`
	APIBaseURL                    string        `mapstructure:"API_BASE_URL"`
	APITimeout                    time.Duration `mapstructure:"API_TIMEOUT"`
	APIKey                        string        `mapstructure:"API_KEY"`
	APIClientID                   string        `mapstructure:"API_CLIENT_ID"`
	APIClientSecret               string        `mapstructure:"API_CLIENT_SECRET"`
	APITokenURL                   string        `mapstructure:"API_TOKEN_URL"`
	JWTSecret                     string        `mapstructure:"JWT_SECRET"`
	CSRFKey                       string        `mapstructure:"CSRF_KEY"`
	SecureCookies                 bool          `mapstructure:"SECURE_COOKIES"`
	EnableCORS                    bool          `mapstructure:"ENABLE_CORS"`
	CORSOrigins                   []string      `mapstructure:"CORS_ORIGINS"`
	MissionAPIPort                string        `mapstructure:"MISSION_API_PORT"`
	DatabasePath                  string        `mapstructure:"DATABASE_PATH"`
	MissionAPIKeys                []string      `mapstructure:"MISSION_API_KEYS"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

var defaults = map[string]any{
	"PORT":             "8080",
	"LOG_LEVEL":        "info",
	"SITE_NAME":        "Mission Registration",
	"API_BASE_URL":     "http://127.0.0.1:8081",
	"API_TIMEOUT":      "15s",
	"SECURE_COOKIES":   false,
	"ENABLE_CORS":      false,
	"CORS_ORIGINS":     []string{"*"},
	"MISSION_API_PORT": "8081",
	"DATABASE_PATH":    "missions.db",
}

var envOnly = []string{
	"API_KEY",
	"API_CLIENT_ID",
	"API_CLIENT_SECRET",
	"API_TOKEN_URL",
	"JWT_SECRET",
	"CSRF_KEY",
	"MISSION_API_KEYS",
	"DISCORD_BOT_TOKEN",
	"DISCORD_NOTIFICATIONS_CHANNEL_ID",
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range envOnly {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config.LoadConfig: bind %s: %w", key, err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}
	if cfg.APIClientID != "" && cfg.APITokenURL == "" {
		return nil, fmt.Errorf("config.LoadConfig: API_TOKEN_URL is required when API_CLIENT_ID is set")
	}
	return &cfg, nil
}

// OAuthEnabled reports whether the mission API is called with client
// credentials. LoadConfig rejects a client id without a token URL.
func (c *Config) OAuthEnabled() bool {
	return c.APIClientID != "" && c.APITokenURL != ""
}
