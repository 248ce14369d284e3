package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-discord-activity/discord"
	apperrors "github.com/jrsteele09/go-discord-activity/internal/errors"
	"github.com/jrsteele09/go-discord-activity/oauth2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// handshake holds the collaborators shared by every state of one session.
type handshake struct {
	id        string
	clientID  string
	scopes    []discord.Scope
	host      HostSDK
	exchanger CodeExchanger
	guilds    GuildLister
	logger    zerolog.Logger
}

// Option configures a handshake.
type Option func(*handshake)

// WithLogger replaces the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *handshake) {
		h.logger = logger
	}
}

// WithScopes overrides discord.ActivityScopes.
func WithScopes(scopes ...discord.Scope) Option {
	return func(h *handshake) {
		h.scopes = scopes
	}
}

// Uninitialized is the entry state. Its only edge is Ready.
type Uninitialized struct {
	transition
	h *handshake
}

// New starts a handshake for one client session.
func New(clientID string, host HostSDK, exchanger CodeExchanger, guilds GuildLister, opts ...Option) *Uninitialized {
	h := &handshake{
		id:        uuid.NewString(),
		clientID:  clientID,
		scopes:    discord.ActivityScopes,
		host:      host,
		exchanger: exchanger,
		guilds:    guilds,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With().Str("handshake", h.id).Logger()
	return &Uninitialized{h: h}
}

func (s *Uninitialized) Phase() Phase { return PhaseUninitialized }

// Ready waits for the host connection. The caller's context is the only timeout.
func (s *Uninitialized) Ready(ctx context.Context) (*HostReady, error) {
	if !s.take() {
		return nil, apperrors.ErrTransitionUsed
	}
	if err := s.h.host.Ready(ctx); err != nil {
		return nil, fmt.Errorf("[activity Ready] %w: %w", apperrors.ErrHostDenied, err)
	}
	s.h.logger.Debug().Str("client_id", s.h.clientID).Stringer("phase", PhaseHostReady).Msg("host ready")
	return &HostReady{h: s.h}, nil
}

// HostReady means the host connection is established.
type HostReady struct {
	transition
	h *handshake
}

func (s *HostReady) Phase() Phase { return PhaseHostReady }

// Authorize requests an authorization code for the activity scopes without
// overriding the consent prompt.
func (s *HostReady) Authorize(ctx context.Context) (*Authorized, error) {
	if !s.take() {
		return nil, apperrors.ErrTransitionUsed
	}
	resp, err := s.h.host.Authorize(ctx, oauth2.AuthorizeRequest{
		ClientID:     s.h.clientID,
		ResponseType: oauth2.CodeResponseType,
		State:        "",
		Prompt:       oauth2.PromptNone,
		Scope:        discord.Strings(s.h.scopes),
	})
	if err != nil {
		return nil, fmt.Errorf("[activity Authorize] %w: %w", apperrors.ErrHostDenied, err)
	}
	if resp.Code == "" {
		return nil, fmt.Errorf("[activity Authorize] %w: empty authorization code", apperrors.ErrHostDenied)
	}
	s.h.logger.Debug().Stringer("phase", PhaseAuthorized).Msg("authorization code received")
	return &Authorized{h: s.h, code: resp.Code}, nil
}

// Authorized holds a code that has not been exchanged yet.
type Authorized struct {
	transition
	h    *handshake
	code string
}

func (s *Authorized) Phase() Phase { return PhaseAuthorized }

// ExchangeCode consumes the authorization code through the backend.
func (s *Authorized) ExchangeCode(ctx context.Context) (*TokenExchanged, error) {
	if !s.take() {
		return nil, apperrors.ErrTransitionUsed
	}
	code := s.code
	s.code = ""
	token, err := s.h.exchanger.ExchangeCode(ctx, code)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrExchangeFailed) {
			err = fmt.Errorf("%w: %w", apperrors.ErrExchangeFailed, err)
		}
		return nil, fmt.Errorf("[activity ExchangeCode] %w", err)
	}
	if token == "" {
		return nil, fmt.Errorf("[activity ExchangeCode] %w: empty access token", apperrors.ErrExchangeFailed)
	}
	s.h.logger.Debug().Stringer("phase", PhaseTokenExchanged).Msg("code exchanged")
	return &TokenExchanged{h: s.h, accessToken: token}, nil
}

// TokenExchanged holds an access token the host has not accepted yet.
type TokenExchanged struct {
	transition
	h           *handshake
	accessToken string
}

func (s *TokenExchanged) Phase() Phase { return PhaseTokenExchanged }

// Authenticate passes the access token to the host. A nil or empty session is
// fatal.
func (s *TokenExchanged) Authenticate(ctx context.Context) (*Authenticated, error) {
	if !s.take() {
		return nil, apperrors.ErrTransitionUsed
	}
	session, err := s.h.host.Authenticate(ctx, s.accessToken)
	if err != nil {
		return nil, fmt.Errorf("[activity Authenticate] %w: %w", apperrors.ErrHostDenied, err)
	}
	if session == nil {
		return nil, fmt.Errorf("[activity Authenticate] %w: authenticate command returned no session", apperrors.ErrAuthenticationFailed)
	}
	if session.User.ID == "" && session.AccessToken == "" {
		return nil, fmt.Errorf("[activity Authenticate] %w: authenticate command returned an empty session", apperrors.ErrAuthenticationFailed)
	}
	if session.AccessToken == "" {
		session.AccessToken = s.accessToken
	}
	s.h.logger.Info().Str("user_id", session.User.ID).Stringer("phase", PhaseAuthenticated).Msg("authenticated")
	return &Authenticated{h: s.h, session: *session}, nil
}

// Authenticated holds the session. Enrichment can only start from here.
type Authenticated struct {
	transition
	h       *handshake
	session Session
}

func (s *Authenticated) Phase() Phase { return PhaseAuthenticated }

// Session returns a copy of the authenticated session.
func (s *Authenticated) Session() Session { return s.session }

// Run drives the handshake from Uninitialized to Enriched. The first failure
// before Authenticated is returned unchanged and nothing after it runs.
func (s *Uninitialized) Run(ctx context.Context) (*Enriched, error) {
	ready, err := s.Ready(ctx)
	if err != nil {
		return nil, err
	}
	authorized, err := ready.Authorize(ctx)
	if err != nil {
		return nil, err
	}
	exchanged, err := authorized.ExchangeCode(ctx)
	if err != nil {
		return nil, err
	}
	authenticated, err := exchanged.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return authenticated.Enrich(ctx)
}
