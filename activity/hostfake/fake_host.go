// Package hostfake provides in-memory stand-ins for the host SDK and the
// handshake's network collaborators.
package hostfake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-discord-activity/activity"
	"github.com/jrsteele09/go-discord-activity/discord"
	"github.com/jrsteele09/go-discord-activity/oauth2"
)

// CallLog records collaborator calls in order across all fakes sharing it.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *CallLog) record(call string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

// Calls returns a copy of the recorded calls.
func (l *CallLog) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// Has reports whether call was recorded.
func (l *CallLog) Has(call string) bool {
	for _, c := range l.Calls() {
		if c == call {
			return true
		}
	}
	return false
}

const (
	CallReady        = "ready"
	CallAuthorize    = "authorize"
	CallExchange     = "exchange"
	CallAuthenticate = "authenticate"
	CallGetChannel   = "getChannel"
	CallGuilds       = "guilds"
)

// FakeHost implements activity.HostSDK.
type FakeHost struct {
	Log *CallLog

	ReadyErr error

	Code         string
	AuthorizeErr error

	Session         *activity.Session
	AuthenticateErr error

	Channel       *activity.Channel
	GetChannelErr error

	// PanicOnGetChannel simulates a host SDK that throws.
	PanicOnGetChannel bool

	LaunchChannelID string
	LaunchGuildID   string

	mu                sync.Mutex
	authorizeRequests []oauth2.AuthorizeRequest
	authenticated     []string
}

var _ activity.HostSDK = (*FakeHost)(nil)

// NewFakeHost returns a host that grants everything for the given channel and guild.
func NewFakeHost(log *CallLog, channelID, guildID string) *FakeHost {
	return &FakeHost{
		Log:             log,
		Code:            "abc123",
		LaunchChannelID: channelID,
		LaunchGuildID:   guildID,
		Session: &activity.Session{
			User:   activity.User{ID: "user-1", Username: "john"},
			Scopes: discord.Strings(discord.ActivityScopes),
		},
	}
}

func (h *FakeHost) Ready(ctx context.Context) error {
	h.Log.record(CallReady)
	return h.ReadyErr
}

func (h *FakeHost) Authorize(ctx context.Context, req oauth2.AuthorizeRequest) (oauth2.AuthorizeResponse, error) {
	h.Log.record(CallAuthorize)
	h.mu.Lock()
	h.authorizeRequests = append(h.authorizeRequests, req)
	h.mu.Unlock()
	if h.AuthorizeErr != nil {
		return oauth2.AuthorizeResponse{}, h.AuthorizeErr
	}
	return oauth2.AuthorizeResponse{Code: h.Code}, nil
}

func (h *FakeHost) Authenticate(ctx context.Context, accessToken string) (*activity.Session, error) {
	h.Log.record(CallAuthenticate)
	h.mu.Lock()
	h.authenticated = append(h.authenticated, accessToken)
	h.mu.Unlock()
	if h.AuthenticateErr != nil {
		return nil, h.AuthenticateErr
	}
	if h.Session == nil {
		return nil, nil
	}
	session := *h.Session
	return &session, nil
}

func (h *FakeHost) GetChannel(ctx context.Context, channelID string) (*activity.Channel, error) {
	h.Log.record(CallGetChannel)
	if h.PanicOnGetChannel {
		panic("getChannel: missing scope")
	}
	if h.GetChannelErr != nil {
		return nil, h.GetChannelErr
	}
	return h.Channel, nil
}

func (h *FakeHost) ChannelID() string { return h.LaunchChannelID }

func (h *FakeHost) GuildID() string { return h.LaunchGuildID }

// AuthorizeRequests returns the recorded authorize arguments.
func (h *FakeHost) AuthorizeRequests() []oauth2.AuthorizeRequest {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]oauth2.AuthorizeRequest(nil), h.authorizeRequests...)
}

// AuthenticatedTokens returns the tokens passed to Authenticate.
func (h *FakeHost) AuthenticatedTokens() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.authenticated...)
}
