package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client configuration
type Config struct {
	APIURL         string        `validate:"required,url"`
	TokenFile      string        `validate:"required"`
	RequestTimeout time.Duration `validate:"gt=0"`
	AdminPageSize  int           `validate:"min=1,max=100"`

	LogLevel    string `validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat   string `validate:"omitempty,oneof=json text"`
	LogDir      string
	Environment string `validate:"required"`
	ServiceName string
	Version     string

	// Discord front end only
	DiscordToken     string
	DiscordAppID     string
	DiscordTokenFile string

	// DiscordForceCommands overwrites the registered slash commands even
	// when they look unchanged.
	DiscordForceCommands bool

	StatusPort       int           `validate:"min=0,max=65535"`
	SessionCacheSize int           `validate:"min=1"`
	SessionTTL       time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:           getEnv(EnvAPIURL, DefaultAPIURL),
		TokenFile:        getEnv(EnvTokenFile, DefaultTokenFile),
		LogLevel:         getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:        getEnv(EnvLogFormat, DefaultLogFormat),
		LogDir:           getEnv(EnvLogDir, DefaultLogDir),
		Environment:      getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:      getEnv(EnvServiceName, DefaultServiceName),
		Version:          getEnv(EnvVersion, DefaultVersion),
		DiscordToken:     os.Getenv(EnvDiscordToken),
		DiscordAppID:     os.Getenv(EnvDiscordAppID),
		DiscordTokenFile: getEnv(EnvDiscordTokenFile, DefaultDiscordTokenFile),

		DiscordForceCommands: os.Getenv(EnvDiscordForceCommandUpdate) == "true",
	}

	var err error
	if cfg.RequestTimeout, err = getDuration(EnvRequestTimeout, DefaultRequestTimeout); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration(EnvSessionTTL, DefaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.AdminPageSize, err = getInt(EnvAdminPageSize, DefaultAdminPageSize); err != nil {
		return nil, err
	}
	if cfg.StatusPort, err = getInt(EnvStatusPort, DefaultStatusPort); err != nil {
		return nil, err
	}
	if cfg.SessionCacheSize, err = getInt(EnvSessionCacheSize, DefaultSessionCacheSize); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDiscord loads the configuration and additionally requires the Discord
// credentials.
func LoadDiscord() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	var missing []string
	if cfg.DiscordToken == "" {
		missing = append(missing, EnvDiscordToken)
	}
	if cfg.DiscordAppID == "" {
		missing = append(missing, EnvDiscordAppID)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
