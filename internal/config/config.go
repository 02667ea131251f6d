package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`

	RazorpayKeyID     string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `mapstructure:"RAZORPAY_KEY_SECRET"`

	// Optional infrastructure. Empty values disable the component.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	AMQPURL       string `mapstructure:"AMQP_URL"`
	AMQPExchange  string `mapstructure:"AMQP_EXCHANGE"`

	SMTPHost       string `mapstructure:"SMTP_HOST"`
	SMTPPort       string `mapstructure:"SMTP_PORT"`
	SMTPUsername   string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword   string `mapstructure:"SMTP_PASSWORD"`
	LeadNotifyFrom string `mapstructure:"LEAD_NOTIFY_FROM"`
	LeadNotifyTo   string `mapstructure:"LEAD_NOTIFY_TO"`

	GeocodeProxyURL  string `mapstructure:"GEOCODE_PROXY_URL"`
	NominatimBaseURL string `mapstructure:"NOMINATIM_BASE_URL"`

	CacheTTLSeconds int `mapstructure:"CACHE_TTL_SECONDS"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("AMQP_EXCHANGE", "storefront.events")
	viper.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("CACHE_TTL_SECONDS", 120)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SMTP_PORT", "587")

	// Bind environment variables
	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("RAZORPAY_KEY_ID")
	viper.BindEnv("RAZORPAY_KEY_SECRET")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("REDIS_PASSWORD")
	viper.BindEnv("REDIS_DB")
	viper.BindEnv("AMQP_URL")
	viper.BindEnv("AMQP_EXCHANGE")
	viper.BindEnv("SMTP_HOST")
	viper.BindEnv("SMTP_PORT")
	viper.BindEnv("SMTP_USERNAME")
	viper.BindEnv("SMTP_PASSWORD")
	viper.BindEnv("LEAD_NOTIFY_FROM")
	viper.BindEnv("LEAD_NOTIFY_TO")
	viper.BindEnv("GEOCODE_PROXY_URL")
	viper.BindEnv("NOMINATIM_BASE_URL")
	viper.BindEnv("CACHE_TTL_SECONDS")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Validate required fields
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.GoogleApplicationCredentials == "" && cfg.FirebaseServiceAccountJSONBase64 == "" {
		return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is required")
	}
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return nil, errors.New("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required")
	}
	if cfg.ClientURL == "" {
		return nil, errors.New("CLIENT_URL is required")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It panics if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
