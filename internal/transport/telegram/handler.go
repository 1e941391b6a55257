package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/oops"
)

const helpText = `👋 I announce new entries of the watched feed in this chat.

Available commands (chat administrators only):
/bumped - Announce new entries in this chat
/bumped <@channel|chat_id> - Announce new entries in another chat
/unbumped - Stop announcing
/status - Show where announcements go

The bot needs permission to send messages in the target chat.`

// ChannelSettings stores the announcement chat of a Telegram chat
type ChannelSettings interface {
	NotificationChannel(ctx context.Context, platform, guildID string) (string, bool, error)
	SetNotificationChannel(ctx context.Context, platform, guildID, channelID string) error
	ClearNotificationChannel(ctx context.Context, platform, guildID string) error
}

// Handler handles Telegram bot interactions
type Handler struct {
	settings ChannelSettings
	log      *slog.Logger
}

// New creates a new Telegram handler
func New(settings ChannelSettings, log *slog.Logger) *Handler {
	return &Handler{
		settings: settings,
		log:      log,
	}
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/bumped", bot.MatchTypePrefix, h.handleBumped)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/unbumped", bot.MatchTypePrefix, h.handleUnbumped)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypePrefix, h.handleStatus)
}

// HandleUpdate ignores everything that is not a registered command
func (h *Handler) HandleUpdate(_ context.Context, _ *bot.Bot, _ *models.Update) {}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.reply(ctx, b, update.Message, helpText)
}

func (h *Handler) handleBumped(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if !h.authorize(ctx, b, msg) {
		return
	}

	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	target, explicit := parseTarget(msg.Text)
	if !explicit {
		target = chatID
	}

	if explicit {
		chat, err := b.GetChat(ctx, &bot.GetChatParams{ChatID: target})
		if err != nil {
			h.reply(ctx, b, msg, fmt.Sprintf("❌ Cannot access %s. Add the bot to that chat first.", target))
			return
		}
		target = strconv.FormatInt(chat.ID, 10)
	}

	if err := h.settings.SetNotificationChannel(ctx, PlatformName, chatID, target); err != nil {
		h.log.ErrorContext(ctx, "Failed to set notification channel",
			"error", err,
			"chatID", chatID,
			"target", target)
		h.reply(ctx, b, msg, "❌ Failed to save the announcement chat.")
		return
	}

	h.log.InfoContext(ctx, "Notification channel set",
		"platform", PlatformName,
		"guildID", chatID,
		"channelID", target)

	if target == chatID {
		h.reply(ctx, b, msg, "✅ New feed entries will be announced in this chat.")
		return
	}
	h.reply(ctx, b, msg, fmt.Sprintf("✅ New feed entries will be announced in chat %s.", target))
}

func (h *Handler) handleUnbumped(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if !h.authorize(ctx, b, msg) {
		return
	}

	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if err := h.settings.ClearNotificationChannel(ctx, PlatformName, chatID); err != nil {
		h.log.ErrorContext(ctx, "Failed to clear notification channel",
			"error", err,
			"chatID", chatID)
		h.reply(ctx, b, msg, "❌ Failed to clear the announcement chat.")
		return
	}

	h.reply(ctx, b, msg, "✅ Announcements are disabled for this chat.")
}

func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	chatID := strconv.FormatInt(msg.Chat.ID, 10)

	target, ok, err := h.settings.NotificationChannel(ctx, PlatformName, chatID)
	switch {
	case err != nil:
		h.log.ErrorContext(ctx, "Failed to read notification channel",
			"error", err,
			"chatID", chatID)
		h.reply(ctx, b, msg, "❌ Failed to read the announcement chat.")
	case !ok:
		h.reply(ctx, b, msg, "No announcement chat is set. Use /bumped.")
	case target == chatID:
		h.reply(ctx, b, msg, "📊 New feed entries are announced in this chat.")
	default:
		h.reply(ctx, b, msg, fmt.Sprintf("📊 New feed entries are announced in chat %s.", target))
	}
}

// authorize allows group administrators to change settings. Private chats have
// no guild to configure.
func (h *Handler) authorize(ctx context.Context, b *bot.Bot, msg *models.Message) bool {
	if msg.From == nil || string(msg.Chat.Type) == "private" {
		h.reply(ctx, b, msg, "❌ Use this command in a group or channel.")
		return false
	}

	member, err := b.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: msg.Chat.ID,
		UserID: msg.From.ID,
	})
	if err != nil {
		h.log.WarnContext(ctx, "Failed to check chat membership",
			"error", oops.With("chat_id", msg.Chat.ID, "user_id", msg.From.ID).Wrap(err))
		h.reply(ctx, b, msg, "❌ Unable to verify your permissions.")
		return false
	}

	if !isAdmin(member) {
		h.reply(ctx, b, msg, "❌ Unauthorized")
		return false
	}

	return true
}

func (h *Handler) reply(ctx context.Context, b *bot.Bot, msg *models.Message, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   text,
	}); err != nil {
		h.log.ErrorContext(ctx, "Failed to send reply",
			"error", err,
			"chatID", msg.Chat.ID)
	}
}

func isAdmin(member *models.ChatMember) bool {
	if member == nil {
		return false
	}
	return member.Type == models.ChatMemberTypeOwner || member.Type == models.ChatMemberTypeAdministrator
}

// parseTarget extracts the optional chat argument of /bumped.
func parseTarget(text string) (string, bool) {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return "", false
	}

	target := parts[1]
	if _, err := strconv.ParseInt(target, 10, 64); err == nil {
		return target, true
	}

	return "@" + strings.TrimPrefix(target, "@"), true
}
