package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const (
	commandName      = "bumped"
	subcommandSet    = "set"
	subcommandClear  = "clear"
	subcommandShow   = "show"
	channelOptionKey = "channel"
)

// ChannelSettings stores the announcement channel of a guild
type ChannelSettings interface {
	NotificationChannel(ctx context.Context, platform, guildID string) (string, bool, error)
	SetNotificationChannel(ctx context.Context, platform, guildID, channelID string) error
	ClearNotificationChannel(ctx context.Context, platform, guildID string) error
}

// Commands handles the /bumped application command
type Commands struct {
	settings ChannelSettings
	log      *slog.Logger
}

func NewCommands(settings ChannelSettings, log *slog.Logger) *Commands {
	return &Commands{
		settings: settings,
		log:      log,
	}
}

// Register creates the global /bumped command and installs its interaction handler.
func (c *Commands) Register(s *discordgo.Session) error {
	s.AddHandler(c.onInteraction)

	if _, err := s.ApplicationCommandCreate(s.State.User.ID, "", command()); err != nil {
		return oops.In("discord").With("command", commandName, "context", "failed to register command").Wrap(err)
	}

	return nil
}

func command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     commandName,
		Description:              "Configure where new feed entries are announced",
		DefaultMemberPermissions: lo.ToPtr(int64(discordgo.PermissionManageServer)),
		DMPermission:             lo.ToPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandSet,
				Description: "Announce new entries in a channel",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         channelOptionKey,
						Description:  "Text channel receiving announcements",
						Required:     true,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandClear,
				Description: "Stop announcing new entries",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandShow,
				Description: "Show the announcement channel",
			},
		},
	}
}

func (c *Commands) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != commandName || len(data.Options) == 0 {
		return
	}

	sub := data.Options[0]
	channelID := ""
	if opt, ok := lo.Find(sub.Options, func(o *discordgo.ApplicationCommandInteractionDataOption) bool {
		return o.Name == channelOptionKey
	}); ok {
		channelID = opt.ChannelValue(nil).ID
	}

	ctx := context.Background()
	reply := c.execute(ctx, i.GuildID, sub.Name, channelID)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "Failed to respond to interaction",
			"error", err,
			"guildID", i.GuildID,
			"subcommand", sub.Name)
	}
}

// execute applies a /bumped subcommand for the guild and returns the reply text.
func (c *Commands) execute(ctx context.Context, guildID, subcommand, channelID string) string {
	if guildID == "" {
		return "This command can only be used in a server."
	}

	switch subcommand {
	case subcommandSet:
		if err := c.settings.SetNotificationChannel(ctx, PlatformName, guildID, channelID); err != nil {
			c.log.ErrorContext(ctx, "Failed to set notification channel",
				"error", err,
				"guildID", guildID,
				"channelID", channelID)
			return "Failed to save the announcement channel."
		}
		c.log.InfoContext(ctx, "Notification channel set",
			"platform", PlatformName,
			"guildID", guildID,
			"channelID", channelID)
		return fmt.Sprintf("New feed entries will be announced in <#%s>.", channelID)

	case subcommandClear:
		if err := c.settings.ClearNotificationChannel(ctx, PlatformName, guildID); err != nil {
			c.log.ErrorContext(ctx, "Failed to clear notification channel",
				"error", err,
				"guildID", guildID)
			return "Failed to clear the announcement channel."
		}
		return "Announcements are disabled for this server."

	case subcommandShow:
		channelID, ok, err := c.settings.NotificationChannel(ctx, PlatformName, guildID)
		if err != nil {
			c.log.ErrorContext(ctx, "Failed to read notification channel",
				"error", err,
				"guildID", guildID)
			return "Failed to read the announcement channel."
		}
		if !ok {
			return "No announcement channel is set. Use `/bumped set`."
		}
		return fmt.Sprintf("New feed entries are announced in <#%s>.", channelID)

	default:
		return "Unknown subcommand."
	}
}
