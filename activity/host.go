package activity

import (
	"context"
	"time"

	"github.com/jrsteele09/go-discord-activity/discord"
	"github.com/jrsteele09/go-discord-activity/oauth2"
)

// HostSDK is the narrow capability surface of the embedded app SDK that the
// handshake needs. The real SDK is an RPC client talking to the Discord client
// through the activity frame; tests use hostfake.
type HostSDK interface {
	// Ready blocks until the host handshake completes. It must be called
	// before any other command.
	Ready(ctx context.Context) error
	// Authorize asks the host for an authorization code.
	Authorize(ctx context.Context, req oauth2.AuthorizeRequest) (oauth2.AuthorizeResponse, error)
	// Authenticate hands the access token back to the host. A nil session
	// without an error means the host did not accept the token.
	Authenticate(ctx context.Context, accessToken string) (*Session, error)
	// GetChannel fetches a channel over RPC.
	GetChannel(ctx context.Context, channelID string) (*Channel, error)
	// ChannelID is the channel the activity was launched in, "" when unknown.
	ChannelID() string
	// GuildID is the guild the activity was launched in, "" for DMs.
	GuildID() string
}

// CodeExchanger trades an authorization code for an access token through the
// activity backend. backend.Client implements it.
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
}

// GuildLister fetches the user's guilds from the platform REST API.
// discord.APIClient implements it.
type GuildLister interface {
	CurrentUserGuilds(ctx context.Context, accessToken string) ([]discord.Guild, error)
}

// User is the identity returned by the host authenticate command.
type User struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	PublicFlags   int     `json:"public_flags"`
}

// Application identifies the activity's application as seen by the host.
type Application struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        *string `json:"icon,omitempty"`
}

// Session is the authenticated session returned by the host authenticate
// command. It lives for the page session only.
type Session struct {
	AccessToken string      `json:"access_token"`
	User        User        `json:"user"`
	Scopes      []string    `json:"scopes"`
	Expires     time.Time   `json:"expires"`
	Application Application `json:"application"`
}

// Channel is the subset of a channel returned by the host getChannel command.
type Channel struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	GuildID *string `json:"guild_id,omitempty"`
}
