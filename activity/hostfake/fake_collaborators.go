package hostfake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-discord-activity/activity"
	"github.com/jrsteele09/go-discord-activity/discord"
)

// FakeExchanger implements activity.CodeExchanger.
type FakeExchanger struct {
	Log   *CallLog
	Token string
	Err   error

	mu    sync.Mutex
	codes []string
}

var _ activity.CodeExchanger = (*FakeExchanger)(nil)

func (e *FakeExchanger) ExchangeCode(ctx context.Context, code string) (string, error) {
	e.Log.record(CallExchange)
	e.mu.Lock()
	e.codes = append(e.codes, code)
	e.mu.Unlock()
	if e.Err != nil {
		return "", e.Err
	}
	return e.Token, nil
}

// Codes returns the codes that were exchanged.
func (e *FakeExchanger) Codes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.codes...)
}

// FakeGuildLister implements activity.GuildLister.
type FakeGuildLister struct {
	Log    *CallLog
	Guilds []discord.Guild
	Err    error

	mu     sync.Mutex
	tokens []string
}

var _ activity.GuildLister = (*FakeGuildLister)(nil)

func (g *FakeGuildLister) CurrentUserGuilds(ctx context.Context, accessToken string) ([]discord.Guild, error) {
	g.Log.record(CallGuilds)
	g.mu.Lock()
	g.tokens = append(g.tokens, accessToken)
	g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Guilds, nil
}

// Tokens returns the bearer tokens the lister was called with.
func (g *FakeGuildLister) Tokens() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.tokens...)
}
