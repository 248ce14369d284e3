package oauth2

// ResponseType represents the OAuth 2.0 response type requested from the host authorize command.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow.
	// Used in: the activity handshake (the only flow the host supports for activities)
	// Returns an authorization code that must be exchanged for a token by the backend.
	CodeResponseType ResponseType = "code"
)

// PromptType controls whether the host shows the consent modal.
type PromptType string

const (
	// PromptNone skips the consent modal when the user already granted the scopes.
	// The host still prompts on first use.
	PromptNone PromptType = "none"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: client_id, client_secret, grant_type, code
	// Returns: access_token (the backend forwards nothing else)
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// AuthorizeRequest holds the arguments of the host SDK authorize command.
type AuthorizeRequest struct {
	// ClientID identifies the application requesting authorization.
	// Required: Yes
	// Example: "1234567890123456789"
	ClientID string `json:"client_id"`

	// ResponseType is always "code" for activities.
	ResponseType ResponseType `json:"response_type"`

	// State is an opaque value echoed back by the host.
	// Example: "" (the activity does not rely on it; the host RPC channel is already bound to the frame)
	State string `json:"state"`

	// Prompt controls the consent modal.
	// Example: "none"
	Prompt PromptType `json:"prompt"`

	// Scope lists the permissions being requested.
	// Example: ["identify", "guilds", "rpc.voice.read"]
	Scope []string `json:"scope"`
}

// AuthorizeResponse is the result of the host authorize command.
type AuthorizeResponse struct {
	// Code is the short lived authorization code.
	// Usage: Exchanged once by the backend, then becomes invalid
	Code string `json:"code"`
}
