package config

import "time"

// Environment variable names
const (
	EnvAPIURL           = "API_URL"
	EnvTokenFile        = "TOKEN_FILE"
	EnvRequestTimeout   = "REQUEST_TIMEOUT"
	EnvAdminPageSize    = "ADMIN_PAGE_SIZE"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvLogDir           = "LOG_DIR"
	EnvEnvironment      = "ENVIRONMENT"
	EnvServiceName      = "SERVICE_NAME"
	EnvVersion          = "VERSION"
	EnvDiscordToken     = "DISCORD_TOKEN"
	EnvDiscordAppID     = "DISCORD_APP_ID"
	EnvDiscordTokenFile = "DISCORD_TOKEN_FILE"
	EnvStatusPort       = "STATUS_PORT"
	EnvSessionCacheSize = "SESSION_CACHE_SIZE"
	EnvSessionTTL       = "SESSION_TTL"

	EnvDiscordForceCommandUpdate = "DISCORD_FORCE_COMMAND_UPDATE"
)

// Defaults
const (
	DefaultAPIURL           = "http://localhost:5000"
	DefaultTokenFile        = ".doofi/token"
	DefaultRequestTimeout   = 10 * time.Second
	DefaultAdminPageSize    = 10
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultLogDir           = "logs"
	DefaultEnvironment      = "dev"
	DefaultServiceName      = "doofi-client"
	DefaultVersion          = "dev"
	DefaultDiscordTokenFile = ".doofi/discord_tokens.json"
	DefaultStatusPort       = 8082
	DefaultSessionCacheSize = 1000
	DefaultSessionTTL       = 24 * time.Hour
)
