package config

import "time"

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetDiscordBaseURL() string
	GetUpstreamTimeout() time.Duration
}

type OAuth struct {
	ClientID string `validate:"required"`
	// ClientSecret never leaves the backend process. Never log or expose this value.
	ClientSecret    string        `json:"-" validate:"required"`
	DiscordBaseURL  string        `validate:"required,url"`
	UpstreamTimeout time.Duration `validate:"gt=0"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetClientSecret() string {
	return o.ClientSecret
}

func (o OAuth) GetDiscordBaseURL() string {
	return o.DiscordBaseURL
}

func (o OAuth) GetUpstreamTimeout() time.Duration {
	return o.UpstreamTimeout
}

// String keeps the secret out of formatted output.
func (o OAuth) String() string {
	return "OAuth{ClientID: " + o.ClientID + ", ClientSecret: [redacted], DiscordBaseURL: " + o.DiscordBaseURL + "}"
}
