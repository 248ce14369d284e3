package activity

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-discord-activity/discord"
	apperrors "github.com/jrsteele09/go-discord-activity/internal/errors"
	"github.com/jrsteele09/go-discord-activity/internal/utils"
	"golang.org/x/sync/errgroup"
)

const (
	// UnknownChannelName is shown when the channel name cannot be resolved.
	UnknownChannelName = "Unknown"
	// AvatarSize is the rendered guild icon size in pixels.
	AvatarSize = 128
)

// Avatar describes the guild icon element to render.
type Avatar struct {
	GuildID string
	URL     string
	Width   int
	Height  int
}

// Enriched is the terminal state: the session plus best-effort display data.
type Enriched struct {
	Session     Session
	ChannelName string
	// GuildAvatar is nil when the current guild is not in the user's guild list.
	GuildAvatar *Avatar
}

func (e *Enriched) Phase() Phase { return PhaseEnriched }

// ChannelLabel is the text element shown for the activity's voice channel.
func (e *Enriched) ChannelLabel() string {
	return `Activity Channel: "` + e.ChannelName + `"`
}

// Enrich resolves the voice channel name and the guild avatar concurrently.
// Neither step can fail the session: failures are logged and degrade to the
// placeholder name and no avatar.
func (s *Authenticated) Enrich(ctx context.Context) (*Enriched, error) {
	if !s.take() {
		return nil, apperrors.ErrTransitionUsed
	}
	enriched := &Enriched{Session: s.session, ChannelName: UnknownChannelName}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		enriched.ChannelName = s.channelName(gctx)
		return nil
	})
	g.Go(func() error {
		enriched.GuildAvatar = s.guildAvatar(gctx)
		return nil
	})
	_ = g.Wait()

	return enriched, nil
}

func (s *Authenticated) channelName(ctx context.Context) (name string) {
	name = UnknownChannelName
	defer s.recoverEnrichment("channel_name")

	channelID, guildID := s.h.host.ChannelID(), s.h.host.GuildID()
	// Reading a group DM channel needs dm_channels.read, which requires approval.
	if channelID == "" || guildID == "" {
		return name
	}
	channel, err := s.h.host.GetChannel(ctx, channelID)
	if err != nil {
		s.h.logger.Warn().Err(fmt.Errorf("%w: %w", apperrors.ErrEnrichmentFailed, err)).
			Str("channel_id", channelID).Msg("getChannel failed")
		return name
	}
	if channel == nil || utils.Value(channel.Name) == "" {
		return name
	}
	return *channel.Name
}

func (s *Authenticated) guildAvatar(ctx context.Context) *Avatar {
	defer s.recoverEnrichment("guild_avatar")

	guildID := s.h.host.GuildID()
	if guildID == "" || s.h.guilds == nil {
		return nil
	}
	guilds, err := s.h.guilds.CurrentUserGuilds(ctx, s.session.AccessToken)
	if err != nil {
		s.h.logger.Warn().Err(fmt.Errorf("%w: %w", apperrors.ErrEnrichmentFailed, err)).
			Str("guild_id", guildID).Msg("fetching guilds failed")
		return nil
	}
	guild, ok := discord.FindGuild(guilds, guildID)
	if !ok || guild.Icon == "" {
		return nil
	}
	return &Avatar{
		GuildID: guild.ID,
		URL:     discord.GuildIconURL(guild.ID, guild.Icon, AvatarSize),
		Width:   AvatarSize,
		Height:  AvatarSize,
	}
}

func (s *Authenticated) recoverEnrichment(step string) {
	if r := recover(); r != nil {
		s.h.logger.Error().Err(apperrors.ErrEnrichmentFailed).Str("step", step).Interface("panic", r).Msg("recovered from panic")
	}
}
