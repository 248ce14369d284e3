package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	apperrors "github.com/jrsteele09/go-discord-activity/internal/errors"
	"github.com/rs/zerolog/log"
)

type Config interface {
	EnvConfig
	CorsConfig
	OAuthConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsProduction() bool
	GetClientDist() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	OAuth
}

// Load reads the process configuration once. The returned value is immutable
// and is passed explicitly to every component that needs it.
func Load() (Config, error) {
	envFile := GetEnv(envFileVar, defaultEnvFile)
	if err := godotenv.Load(envFile); err != nil {
		log.Debug().Str("file", envFile).Msg("no .env file loaded")
	}
	return FromEnv(GetEnv)
}

// FromEnv builds the configuration from a lookup function. lookup receives the
// variable name and a default value.
func FromEnv(lookup func(envVar, defaultValue string) string) (Config, error) {
	timeout, err := time.ParseDuration(lookup(upstreamTimeoutVar, defaultUpstreamTimeout))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "%s=%q", upstreamTimeoutVar, lookup(upstreamTimeoutVar, ""))
	}

	clientID := lookup(viteClientIDVar, "")
	if clientID == "" {
		clientID = lookup(clientIDVar, "")
	}
	env := lookup(nodeEnvVar, "")
	if env == "" {
		env = lookup(envVar, defaultEnv)
	}

	c := mainConfig{
		EnvVars: EnvVars{
			Port:       lookup(portEnvVar, defaultPort),
			AppName:    lookup(appNameVar, defaultAppName),
			Env:        env,
			ClientDist: lookup(clientDistVar, defaultClientDist),
			LogLevel:   lookup(logLevelVar, defaultLogLevel),
		},
		Cors: Cors{
			Origins: ParseAllowedOrigins(lookup(allowedOriginsVar, "")),
		},
		OAuth: OAuth{
			ClientID:        clientID,
			ClientSecret:    lookup(clientSecretVar, ""),
			DiscordBaseURL:  lookup(discordBaseURLVar, defaultDiscordBaseURL),
			UpstreamTimeout: timeout,
		},
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c mainConfig) validate() error {
	if c.OAuth.ClientID == "" {
		return apperrors.ErrMissingClientID
	}
	if c.OAuth.ClientSecret == "" {
		return apperrors.ErrMissingClientSecret
	}
	v := validator.New()
	if err := v.Struct(c.EnvVars); err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "%s", err.Error())
	}
	if err := v.Struct(c.OAuth); err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "%s", err.Error())
	}
	return nil
}
