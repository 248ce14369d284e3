package oauth2

// CodeExchangeRequest is the body the activity posts to the backend exchange endpoint.
type CodeExchangeRequest struct {
	// Code is the authorization code returned by the host authorize command.
	// Required: Yes
	// Example: "abc123"
	Code string `json:"code" validate:"required"`
}

// CodeExchangeResponse is the only payload the backend returns on success.
// Upstream fields such as refresh_token, scope or expires_in are never forwarded.
type CodeExchangeResponse struct {
	// AccessToken is the bearer credential used for REST calls on behalf of the user.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	// Lifespan: Short-lived, held in memory for the session only
	AccessToken string `json:"access_token"`
}
