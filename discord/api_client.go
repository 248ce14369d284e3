package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Guild is the subset of a partial guild object used by the activity.
type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Icon string `json:"icon,omitempty"`
}

// APIClient calls the Discord REST API on behalf of a user.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// APIClientOption configures an APIClient.
type APIClientOption func(*APIClient)

// WithAPIBaseURL points the client at a different API host.
func WithAPIBaseURL(baseURL string) APIClientOption {
	return func(c *APIClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAPIHTTPClient sets the base transport. The bearer token is layered on top of it.
func WithAPIHTTPClient(client *http.Client) APIClientOption {
	return func(c *APIClient) {
		c.httpClient = client
	}
}

func NewAPIClient(opts ...APIClientOption) *APIClient {
	c := &APIClient{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentUserGuilds lists the guilds of the user owning accessToken.
func (c *APIClient) CurrentUserGuilds(ctx context.Context, accessToken string) ([]Guild, error) {
	if accessToken == "" {
		return nil, errors.New("[discord CurrentUserGuilds] access token is required")
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+guildsPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[discord CurrentUserGuilds] build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[discord CurrentUserGuilds] request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.Errorf("[discord CurrentUserGuilds] unexpected status %d", resp.StatusCode)
	}

	var guilds []Guild
	if err := json.NewDecoder(resp.Body).Decode(&guilds); err != nil {
		return nil, errors.Wrap(err, "[discord CurrentUserGuilds] decode response")
	}
	return guilds, nil
}

// FindGuild returns the guild with the given id, or false.
func FindGuild(guilds []Guild, guildID string) (Guild, bool) {
	for _, g := range guilds {
		if g.ID == guildID {
			return g, true
		}
	}
	return Guild{}, false
}

// GuildIconURL follows https://discord.com/developers/docs/reference#image-formatting.
func GuildIconURL(guildID, icon string, size int) string {
	return fmt.Sprintf("%s/icons/%s/%s.webp?size=%d", DefaultCDNURL, guildID, icon, size)
}
