package config

import (
	"os"
)

const (
	envFileVar         = "ENV_FILE"
	portEnvVar         = "PORT"
	appNameVar         = "APP_NAME"
	nodeEnvVar         = "NODE_ENV"
	envVar             = "ENV"
	clientDistVar      = "CLIENT_DIST"
	logLevelVar        = "LOG_LEVEL"
	allowedOriginsVar  = "ALLOWED_ORIGINS"
	viteClientIDVar    = "VITE_CLIENT_ID"
	clientIDVar        = "CLIENT_ID"
	clientSecretVar    = "CLIENT_SECRET"
	discordBaseURLVar  = "DISCORD_API_BASE_URL"
	upstreamTimeoutVar = "UPSTREAM_TIMEOUT"

	defaultEnvFile         = "../../.env"
	defaultPort            = "3001"
	defaultAppName         = "Discord Activity"
	defaultEnv             = "development"
	defaultClientDist      = "../client/dist"
	defaultLogLevel        = "info"
	defaultDiscordBaseURL  = "https://discord.com"
	defaultUpstreamTimeout = "10s"

	productionEnv = "production"
)

type EnvVars struct {
	Port       string `validate:"required,numeric"`
	AppName    string
	Env        string `validate:"required"`
	ClientDist string
	LogLevel   string `validate:"oneof=trace debug info warn error fatal panic disabled"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	return ":" + e.Port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

// IsProduction switches the token route to /api/token and enables serving the client build.
func (e EnvVars) IsProduction() bool {
	return e.Env == productionEnv
}

func (e EnvVars) GetClientDist() string {
	return e.ClientDist
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
