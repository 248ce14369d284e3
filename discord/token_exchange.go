package discord

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-discord-activity/internal/errors"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout = 10 * time.Second
	// maxLoggedBody bounds how much of an upstream error body is kept for logging.
	maxLoggedBody = 512
	// bodyReadFailure prefixes x/oauth2 errors for a response body that could
	// not be read.
	bodyReadFailure = "oauth2: cannot fetch token:"
)

// ExchangeError describes a failed code exchange. Kind is one of
// ErrUpstreamUnavailable, ErrExchangeRejected or ErrMalformedUpstreamResponse.
// Status and Body are upstream diagnostics for server-side logs only.
type ExchangeError struct {
	Kind   error
	Status int
	Body   string
	Err    error
}

func (e *ExchangeError) Error() string {
	msg := e.Kind.Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExchangeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// TokenExchanger trades authorization codes for access tokens at the Discord
// OAuth2 token endpoint. It is the only holder of the client secret.
//
// Thread-safe: Yes, it holds no per-request state.
type TokenExchanger struct {
	config     oauth2.Config
	httpClient *http.Client
}

// TokenExchangerOption configures a TokenExchanger.
type TokenExchangerOption func(*TokenExchanger)

// WithBaseURL points the exchanger at a different API host (tests, proxies).
func WithBaseURL(baseURL string) TokenExchangerOption {
	return func(e *TokenExchanger) {
		e.config.Endpoint.TokenURL = strings.TrimRight(baseURL, "/") + tokenPath
	}
}

// WithHTTPClient sets the client used for upstream requests.
func WithHTTPClient(client *http.Client) TokenExchangerOption {
	return func(e *TokenExchanger) {
		e.httpClient = client
	}
}

// NewTokenExchanger creates an exchanger. An empty client id or secret is
// rejected so the exchange endpoint can never run with a blank secret.
func NewTokenExchanger(clientID, clientSecret string, opts ...TokenExchangerOption) (*TokenExchanger, error) {
	if clientID == "" {
		return nil, apperrors.ErrMissingClientID
	}
	if clientSecret == "" {
		return nil, apperrors.ErrMissingClientSecret
	}
	e := &TokenExchanger{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  DefaultBaseURL + tokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Exchange posts client_id, client_secret, grant_type=authorization_code and
// code as a form and returns only the access token.
func (e *TokenExchanger) Exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	tok, err := e.config.Exchange(ctx, code)
	if err != nil {
		return "", classifyExchangeError(err)
	}
	if tok.AccessToken == "" {
		return "", &ExchangeError{Kind: apperrors.ErrMalformedUpstreamResponse}
	}
	return tok.AccessToken, nil
}

func classifyExchangeError(err error) *ExchangeError {
	var retrieveErr *oauth2.RetrieveError
	if apperrors.As(err, &retrieveErr) {
		exErr := &ExchangeError{
			Kind: apperrors.ErrExchangeRejected,
			Body: truncate(string(retrieveErr.Body), maxLoggedBody),
		}
		if retrieveErr.Response != nil {
			exErr.Status = retrieveErr.Response.StatusCode
		}
		return exErr
	}
	var urlErr *url.Error
	if apperrors.As(err, &urlErr) || apperrors.Is(err, context.DeadlineExceeded) || apperrors.Is(err, context.Canceled) {
		return &ExchangeError{Kind: apperrors.ErrUpstreamUnavailable, Err: err}
	}
	if strings.Contains(err.Error(), bodyReadFailure) {
		return &ExchangeError{Kind: apperrors.ErrUpstreamUnavailable, Err: err}
	}
	// Anything else reached us with a success status: an undecodable body or
	// a body without access_token.
	return &ExchangeError{Kind: apperrors.ErrMalformedUpstreamResponse, Err: err}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
