package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           int           `mapstructure:"port" envconfig:"SERVER_PORT"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes" envconfig:"SERVER_MAX_HEADER_BYTES"`
}

// SheetsConfig points the row store at the backing spreadsheet. Tab names
// are configurable so a staging sheet can live next to the production one.
type SheetsConfig struct {
	SpreadsheetID   string        `mapstructure:"spreadsheet_id" envconfig:"SHEETS_SPREADSHEET_ID"`
	CredentialsFile string        `mapstructure:"credentials_file" envconfig:"SHEETS_CREDENTIALS_FILE"`
	PatientsTab     string        `mapstructure:"patients_tab" envconfig:"SHEETS_PATIENTS_TAB"`
	VisitsTab       string        `mapstructure:"visits_tab" envconfig:"SHEETS_VISITS_TAB"`
	TechniquesTab   string        `mapstructure:"techniques_tab" envconfig:"SHEETS_TECHNIQUES_TAB"`
	IntentsTab      string        `mapstructure:"intents_tab" envconfig:"SHEETS_INTENTS_TAB"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl" envconfig:"SHEETS_CACHE_TTL"`
}

// AuthConfig holds the shared staff credential and session settings.
type AuthConfig struct {
	PasswordHash  string        `mapstructure:"password_hash" envconfig:"AUTH_PASSWORD_HASH"`
	JWTSecret     string        `mapstructure:"jwt_secret" envconfig:"AUTH_JWT_SECRET"`
	SessionExpiry time.Duration `mapstructure:"session_expiry" envconfig:"AUTH_SESSION_EXPIRY"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled" envconfig:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" envconfig:"SECURITY_ALLOWED_ORIGINS"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Security  SecurityConfig  `mapstructure:"security"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Environment variables win over the file.
	if err := envconfig.Process("asthmacare", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	if config.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets.spreadsheet_id is required")
	}
	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	if config.Auth.PasswordHash == "" {
		return nil, fmt.Errorf("auth.password_hash is required")
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.max_header_bytes", 1<<20)
	viper.SetDefault("sheets.patients_tab", "patients")
	viper.SetDefault("sheets.visits_tab", "visits")
	viper.SetDefault("sheets.techniques_tab", "technique_checks")
	viper.SetDefault("sheets.intents_tab", "write_intents")
	viper.SetDefault("sheets.cache_ttl", "30s")
	viper.SetDefault("auth.session_expiry", "8h")
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_second", 20)
	viper.SetDefault("rate_limit.burst", 40)
	viper.SetDefault("security.allowed_origins", []string{"*"})
}
