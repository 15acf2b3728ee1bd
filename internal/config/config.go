package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string   `mapstructure:"PORT"`
	DatabasePath        string   `mapstructure:"DATABASE_PATH"`
	GoogleClientID      string   `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string   `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL   string   `mapstructure:"GOOGLE_REDIRECT_URL"`
	JWTSecret           string   `mapstructure:"JWT_SECRET"`
	AppURL              string   `mapstructure:"APP_URL"`
	OneSignalAppID      string   `mapstructure:"ONESIGNAL_APP_ID"`
	OneSignalRESTAPIKey string   `mapstructure:"ONESIGNAL_REST_API_KEY"`
	CronSecret          string   `mapstructure:"CRON_SECRET"`
	SilentNotifications bool     `mapstructure:"SILENT_NOTIFICATIONS"`
	AllowedEmails       []string `mapstructure:"ALLOWED_EMAILS"`
	EnableCORS          bool     `mapstructure:"ENABLE_CORS"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "konnecta.db")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://127.0.0.1:8080/auth/google/callback")
	viper.SetDefault("APP_URL", "http://127.0.0.1:8080")
	viper.SetDefault("SILENT_NOTIFICATIONS", false)

	viper.BindEnv("GOOGLE_CLIENT_ID")
	viper.BindEnv("GOOGLE_CLIENT_SECRET")
	viper.BindEnv("GOOGLE_REDIRECT_URL")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("APP_URL")
	viper.BindEnv("ONESIGNAL_APP_ID")
	viper.BindEnv("ONESIGNAL_REST_API_KEY")
	viper.BindEnv("CRON_SECRET")
	viper.BindEnv("SILENT_NOTIFICATIONS")
	viper.BindEnv("ALLOWED_EMAILS")
	viper.BindEnv("ENABLE_CORS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
