package discord

// Scope is an OAuth2 scope understood by the Discord authorize command.
type Scope string

const (
	// ScopeIdentify grants /users/@me without email.
	ScopeIdentify Scope = "identify"
	// ScopeGuilds grants /users/@me/guilds.
	ScopeGuilds Scope = "guilds"
	// ScopeRPCVoiceRead lets the activity read voice channel state over RPC.
	ScopeRPCVoiceRead Scope = "rpc.voice.read"
)

// ActivityScopes is the scope set requested by the activity handshake.
var ActivityScopes = []Scope{ScopeIdentify, ScopeGuilds, ScopeRPCVoiceRead}

// Strings converts scopes for the wire.
func Strings(scopes []Scope) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = string(s)
	}
	return out
}

const (
	// DefaultBaseURL is the Discord API host.
	DefaultBaseURL = "https://discord.com"
	// DefaultCDNURL is the Discord media host.
	DefaultCDNURL = "https://cdn.discordapp.com"

	tokenPath  = "/api/oauth2/token"
	guildsPath = "/api/users/@me/guilds"
)
