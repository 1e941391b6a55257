package discord

import (
	"context"
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/reshetovitsme/bump-notifier/internal/modules/notifier/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelKind(t *testing.T) {
	tests := []struct {
		in   discordgo.ChannelType
		want domain.ChannelKind
	}{
		{discordgo.ChannelTypeGuildText, domain.ChannelKindText},
		{discordgo.ChannelTypeGuildNews, domain.ChannelKindNews},
		{discordgo.ChannelTypeGuildVoice, domain.ChannelKindVoice},
		{discordgo.ChannelTypeGuildStageVoice, domain.ChannelKindVoice},
		{discordgo.ChannelTypeGuildCategory, domain.ChannelKindCategory},
		{discordgo.ChannelTypeGuildPublicThread, domain.ChannelKindThread},
		{discordgo.ChannelTypeGuildForum, domain.ChannelKindForum},
		{discordgo.ChannelTypeDM, domain.ChannelKindPrivate},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, channelKind(tt.in), "channel type %d", tt.in)
	}
}

func TestToPermission(t *testing.T) {
	assert.Equal(t, domain.Permission(0), toPermission(0))
	assert.Equal(t, domain.PermissionRead, toPermission(discordgo.PermissionViewChannel))
	assert.Equal(t, domain.PermissionSend, toPermission(discordgo.PermissionSendMessages))
	assert.Equal(t,
		domain.PermissionRead|domain.PermissionSend,
		toPermission(discordgo.PermissionViewChannel|discordgo.PermissionSendMessages|discordgo.PermissionManageMessages))
}

func TestToGuildAndChannel(t *testing.T) {
	guild := toGuild(&discordgo.Guild{ID: "1", Name: "Bumped", Unavailable: true})
	assert.Equal(t, domain.Guild{ID: "1", Name: "Bumped", Available: false}, guild)

	channel := toChannel(&discordgo.Channel{
		ID:      "10",
		GuildID: "1",
		Name:    "news",
		Type:    discordgo.ChannelTypeGuildText,
	}, discordgo.PermissionViewChannel|discordgo.PermissionSendMessages)

	_, ok := channel.Check()
	assert.True(t, ok)
	assert.Equal(t, "1", channel.GuildID)
}

func TestToEmbed(t *testing.T) {
	embed := toEmbed(domain.Notification{
		Color:  domain.AccentColor,
		Title:  "Title",
		URL:    "http://bumped.org/psublog/x/",
		Fields: []domain.Field{{Name: domain.SummaryFieldName, Value: "Body"}},
	})

	assert.Equal(t, 3447003, embed.Color)
	assert.Equal(t, "Title", embed.Title)
	assert.Equal(t, "http://bumped.org/psublog/x/", embed.URL)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Summary", embed.Fields[0].Name)
	assert.Equal(t, "Body", embed.Fields[0].Value)
	assert.False(t, embed.Fields[0].Inline)
}

func TestCommandRequiresManageServer(t *testing.T) {
	cmd := command()

	require.NotNil(t, cmd.DefaultMemberPermissions)
	assert.Equal(t, int64(discordgo.PermissionManageServer), *cmd.DefaultMemberPermissions)
	assert.Len(t, cmd.Options, 3)
}

type memorySettings map[string]string

func (m memorySettings) NotificationChannel(_ context.Context, platform, guildID string) (string, bool, error) {
	v, ok := m[platform+"/"+guildID]
	return v, ok, nil
}

func (m memorySettings) SetNotificationChannel(_ context.Context, platform, guildID, channelID string) error {
	m[platform+"/"+guildID] = channelID
	return nil
}

func (m memorySettings) ClearNotificationChannel(_ context.Context, platform, guildID string) error {
	delete(m, platform+"/"+guildID)
	return nil
}

func TestExecute(t *testing.T) {
	settings := memorySettings{}
	c := NewCommands(settings, slog.Default())
	ctx := context.Background()

	assert.Contains(t, c.execute(ctx, "g", subcommandShow, ""), "No announcement channel")

	assert.Equal(t, "New feed entries will be announced in <#42>.", c.execute(ctx, "g", subcommandSet, "42"))
	assert.Equal(t, "42", settings["discord/g"])

	assert.Equal(t, "New feed entries are announced in <#42>.", c.execute(ctx, "g", subcommandShow, ""))

	c.execute(ctx, "g", subcommandClear, "")
	assert.NotContains(t, settings, "discord/g")

	assert.Contains(t, c.execute(ctx, "", subcommandShow, ""), "only be used in a server")
}
