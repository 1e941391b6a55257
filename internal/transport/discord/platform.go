package discord

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/reshetovitsme/bump-notifier/internal/modules/notifier/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const (
	PlatformName = "discord"

	guildSettleTimeout = 10 * time.Second
)

// Platform delivers announcements to Discord guilds through a gateway session
type Platform struct {
	session *discordgo.Session
	log     *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	ready   chan struct{}
	settled chan struct{}
}

// New creates a Discord platform for the bot token. The session is not opened.
func New(token string, log *slog.Logger) (*Platform, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, oops.In("discord").With("context", "failed to create discord session").Wrap(err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	p := &Platform{
		session: session,
		log:     log,
		ready:   make(chan struct{}),
		settled: make(chan struct{}),
	}

	session.AddHandler(p.onReady)
	session.AddHandler(p.onGuildCreate)

	return p, nil
}

func (p *Platform) Name() string {
	return PlatformName
}

// Session exposes the underlying session for command registration.
func (p *Platform) Session() *discordgo.Session {
	return p.session
}

// Open connects to the gateway and waits until the guilds announced in the
// ready event have been received, or until ctx is done.
func (p *Platform) Open(ctx context.Context) error {
	if err := p.session.Open(); err != nil {
		return oops.In("discord").With("context", "failed to open discord session").Wrap(err)
	}

	select {
	case <-p.ready:
	case <-ctx.Done():
		return oops.In("discord").With("context", "waiting for ready event").Wrap(ctx.Err())
	}

	settleCtx, cancel := context.WithTimeout(ctx, guildSettleTimeout)
	defer cancel()

	select {
	case <-p.settled:
	case <-settleCtx.Done():
		p.log.WarnContext(ctx, "Not every guild became available before the deadline",
			"pending", p.pendingCount())
	}

	p.log.InfoContext(ctx, "Discord session is ready",
		"user", p.session.State.User.Username,
		"guilds", len(p.session.State.Guilds))

	return nil
}

func (p *Platform) Close() error {
	return p.session.Close()
}

func (p *Platform) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending != nil {
		return
	}

	p.pending = make(map[string]struct{}, len(r.Guilds))
	for _, g := range r.Guilds {
		if g.Unavailable {
			p.pending[g.ID] = struct{}{}
		}
	}

	close(p.ready)
	if len(p.pending) == 0 {
		close(p.settled)
	}
}

func (p *Platform) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pending) == 0 {
		return
	}

	delete(p.pending, g.ID)
	if len(p.pending) == 0 {
		close(p.settled)
	}
}

func (p *Platform) pendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *Platform) Guilds(_ context.Context) ([]domain.Guild, error) {
	state := p.session.State
	if state == nil || state.User == nil {
		return nil, oops.In("discord").Wrap(errors.ErrPlatformNotConnected)
	}

	state.RLock()
	defer state.RUnlock()

	return lo.Map(state.Guilds, func(g *discordgo.Guild, _ int) domain.Guild {
		return toGuild(g)
	}), nil
}

func (p *Platform) Channel(ctx context.Context, channelID string) (*domain.Channel, error) {
	state := p.session.State
	if state == nil || state.User == nil {
		return nil, oops.In("discord").Wrap(errors.ErrPlatformNotConnected)
	}

	channel, err := state.Channel(channelID)
	if err != nil {
		channel, err = p.session.Channel(channelID, discordgo.WithContext(ctx))
		if err != nil {
			if isNotFound(err) {
				return nil, oops.In("discord").With("channel_id", channelID).Wrap(errors.ErrChannelNotFound)
			}
			return nil, oops.In("discord").With("channel_id", channelID, "context", "failed to resolve channel").Wrap(err)
		}
	}

	permissions, err := state.UserChannelPermissions(state.User.ID, channelID)
	if err != nil {
		permissions, err = p.session.UserChannelPermissions(state.User.ID, channelID, discordgo.WithContext(ctx))
		if err != nil {
			p.log.DebugContext(ctx, "Failed to compute channel permissions",
				"error", err,
				"channelID", channelID)
			permissions = 0
		}
	}

	return toChannel(channel, permissions), nil
}

func (p *Platform) Send(ctx context.Context, channelID string, notification domain.Notification) error {
	_, err := p.session.ChannelMessageSendEmbed(channelID, toEmbed(notification), discordgo.WithContext(ctx))
	if err != nil {
		return oops.In("discord").With("channel_id", channelID, "context", "failed to send embed").Wrap(err)
	}
	return nil
}

func toGuild(g *discordgo.Guild) domain.Guild {
	return domain.Guild{
		ID:        g.ID,
		Name:      g.Name,
		Available: !g.Unavailable,
	}
}

func toChannel(c *discordgo.Channel, permissions int64) *domain.Channel {
	return &domain.Channel{
		ID:          c.ID,
		GuildID:     c.GuildID,
		Name:        c.Name,
		Kind:        channelKind(c.Type),
		Permissions: toPermission(permissions),
	}
}

func channelKind(t discordgo.ChannelType) domain.ChannelKind {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return domain.ChannelKindText
	case discordgo.ChannelTypeGuildNews:
		return domain.ChannelKindNews
	case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
		return domain.ChannelKindVoice
	case discordgo.ChannelTypeGuildCategory:
		return domain.ChannelKindCategory
	case discordgo.ChannelTypeGuildNewsThread, discordgo.ChannelTypeGuildPublicThread, discordgo.ChannelTypeGuildPrivateThread:
		return domain.ChannelKindThread
	case discordgo.ChannelTypeGuildForum:
		return domain.ChannelKindForum
	case discordgo.ChannelTypeDM, discordgo.ChannelTypeGroupDM:
		return domain.ChannelKindPrivate
	default:
		return domain.ChannelKindUnknown
	}
}

func toPermission(permissions int64) domain.Permission {
	var p domain.Permission
	if permissions&discordgo.PermissionViewChannel != 0 {
		p |= domain.PermissionRead
	}
	if permissions&discordgo.PermissionSendMessages != 0 {
		p |= domain.PermissionSend
	}
	return p
}

func toEmbed(n domain.Notification) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: n.Color,
		Title: n.Title,
		URL:   n.URL,
		Fields: lo.Map(n.Fields, func(f domain.Field, _ int) *discordgo.MessageEmbedField {
			return &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value}
		}),
	}
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if stderrors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
