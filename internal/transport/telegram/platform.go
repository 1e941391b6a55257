package telegram

import (
	"context"
	stderrors "errors"
	"html"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/reshetovitsme/bump-notifier/internal/modules/notifier/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/samber/oops"
)

const PlatformName = "telegram"

// GuildLister lists the chats that have a notification channel configured
type GuildLister interface {
	Guilds(ctx context.Context, platform string) ([]string, error)
}

// Platform delivers announcements to Telegram chats. Telegram has no guild
// listing, so the guilds are the chats that configured a notification channel.
type Platform struct {
	bot      *bot.Bot
	settings GuildLister
	log      *slog.Logger
}

func NewPlatform(b *bot.Bot, settings GuildLister, log *slog.Logger) *Platform {
	return &Platform{
		bot:      b,
		settings: settings,
		log:      log,
	}
}

func (p *Platform) Name() string {
	return PlatformName
}

func (p *Platform) Guilds(ctx context.Context) ([]domain.Guild, error) {
	ids, err := p.settings.Guilds(ctx, PlatformName)
	if err != nil {
		return nil, oops.In("telegram").With("context", "failed to list configured chats").Wrap(err)
	}

	guilds := make([]domain.Guild, 0, len(ids))
	for _, id := range ids {
		chat, err := p.bot.GetChat(ctx, &bot.GetChatParams{ChatID: id})
		if err != nil {
			if isChatMissing(err) {
				p.log.DebugContext(ctx, "Chat is unavailable",
					"error", err,
					"chatID", id)
				guilds = append(guilds, domain.Guild{ID: id})
				continue
			}

			p.log.WarnContext(ctx, "Failed to look up chat",
				"error", err,
				"chatID", id)
			guilds = append(guilds, domain.Guild{
				ID:  id,
				Err: oops.In("telegram").With("chat_id", id, "context", "failed to get chat").Wrap(err),
			})
			continue
		}

		guilds = append(guilds, domain.Guild{
			ID:        id,
			Name:      chatTitle(chat),
			Available: true,
		})
	}

	return guilds, nil
}

func (p *Platform) Channel(ctx context.Context, channelID string) (*domain.Channel, error) {
	chat, err := p.bot.GetChat(ctx, &bot.GetChatParams{ChatID: channelID})
	if err != nil {
		if isChatMissing(err) {
			return nil, oops.In("telegram").With("chat_id", channelID).Wrap(errors.ErrChannelNotFound)
		}
		return nil, oops.In("telegram").With("chat_id", channelID, "context", "failed to get chat").Wrap(err)
	}

	botID, err := p.selfID(ctx)
	if err != nil {
		return nil, err
	}

	member, err := p.bot.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: channelID,
		UserID: botID,
	})
	if err != nil {
		return nil, oops.In("telegram").With("chat_id", channelID, "context", "failed to get bot membership").Wrap(err)
	}

	chatType := string(chat.Type)

	// A chat is its own channel; it may be announced to from any configuring chat.
	return &domain.Channel{
		ID:          channelID,
		Name:        chatTitle(chat),
		Kind:        chatKind(chatType),
		Permissions: memberPermissions(chatType, member, chat.Permissions),
	}, nil
}

func (p *Platform) Send(ctx context.Context, channelID string, notification domain.Notification) error {
	_, err := p.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    channelID,
		Text:      RenderHTML(notification),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return oops.In("telegram").With("chat_id", channelID, "context", "failed to send message").Wrap(err)
	}
	return nil
}

// selfID reads the bot user ID from the token and asks getMe only when the
// token does not carry one. Failed lookups are not remembered.
func (p *Platform) selfID(ctx context.Context) (int64, error) {
	if id := p.bot.ID(); id != 0 {
		return id, nil
	}

	me, err := p.bot.GetMe(ctx)
	if err != nil {
		return 0, oops.In("telegram").With("context", "failed to get bot user").Wrap(err)
	}
	return me.ID, nil
}

// RenderHTML formats a notification as a Telegram HTML message.
func RenderHTML(n domain.Notification) string {
	var b strings.Builder

	b.WriteString(`<b><a href="`)
	b.WriteString(html.EscapeString(n.URL))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(n.Title))
	b.WriteString("</a></b>")

	for _, f := range n.Fields {
		b.WriteString("\n\n<b>")
		b.WriteString(html.EscapeString(f.Name))
		b.WriteString("</b>\n")
		b.WriteString(html.EscapeString(f.Value))
	}

	return b.String()
}

func chatTitle(chat *models.ChatFullInfo) string {
	if chat.Title != "" {
		return chat.Title
	}
	if chat.Username != "" {
		return "@" + chat.Username
	}
	return chat.FirstName
}

func chatKind(chatType string) domain.ChannelKind {
	switch chatType {
	case "group", "supergroup":
		return domain.ChannelKindText
	case "channel":
		return domain.ChannelKindNews
	case "private":
		return domain.ChannelKindPrivate
	default:
		return domain.ChannelKindUnknown
	}
}

// memberPermissions derives what the bot may do in a chat from its membership.
func memberPermissions(chatType string, member *models.ChatMember, defaults *models.ChatPermissions) domain.Permission {
	if member == nil {
		return 0
	}

	switch member.Type {
	case models.ChatMemberTypeOwner:
		return domain.PermissionRead | domain.PermissionSend
	case models.ChatMemberTypeAdministrator:
		if chatType == "channel" && (member.Administrator == nil || !member.Administrator.CanPostMessages) {
			return domain.PermissionRead
		}
		return domain.PermissionRead | domain.PermissionSend
	case models.ChatMemberTypeMember:
		if chatType == "channel" {
			return domain.PermissionRead
		}
		if defaults != nil && !defaults.CanSendMessages {
			return domain.PermissionRead
		}
		return domain.PermissionRead | domain.PermissionSend
	case models.ChatMemberTypeRestricted:
		if member.Restricted == nil || !member.Restricted.IsMember {
			return 0
		}
		if member.Restricted.CanSendMessages {
			return domain.PermissionRead | domain.PermissionSend
		}
		return domain.PermissionRead
	default:
		return 0
	}
}

func isChatMissing(err error) bool {
	return stderrors.Is(err, bot.ErrorBadRequest) || stderrors.Is(err, bot.ErrorForbidden)
}
