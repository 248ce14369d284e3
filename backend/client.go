// Package backend is the activity's client for its own token-exchange endpoint.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-discord-activity/internal/errors"
	"github.com/jrsteele09/go-discord-activity/oauth2"
)

// TokenPath is the production route of the exchange endpoint.
const TokenPath = "/api/token"

type Client struct {
	baseURL    string
	tokenPath  string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTokenPath overrides TokenPath, e.g. "/token" when talking to a development server directly.
func WithTokenPath(path string) Option {
	return func(c *Client) {
		c.tokenPath = path
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokenPath:  TokenPath,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExchangeCode posts {"code"} and returns the access token. Every failure,
// including a 200 without a token, wraps ErrExchangeFailed.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	body, err := json.Marshal(oauth2.CodeExchangeRequest{Code: code})
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrExchangeFailed, "[backend ExchangeCode] encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.tokenPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("[backend ExchangeCode] %w: %w", apperrors.ErrExchangeFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("[backend ExchangeCode] %w: %w", apperrors.ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("[backend ExchangeCode] %w: status %d", apperrors.ErrExchangeFailed, resp.StatusCode)
	}

	var tokenResp oauth2.CodeExchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("[backend ExchangeCode] %w: decode response: %w", apperrors.ErrExchangeFailed, err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("[backend ExchangeCode] %w: no access token in response", apperrors.ErrExchangeFailed)
	}
	return tokenResp.AccessToken, nil
}
