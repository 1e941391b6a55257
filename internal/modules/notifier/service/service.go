package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cacheDomain "github.com/reshetovitsme/bump-notifier/internal/modules/cache/domain"
	feedDomain "github.com/reshetovitsme/bump-notifier/internal/modules/feed/domain"
	"github.com/reshetovitsme/bump-notifier/internal/modules/notifier/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/samber/oops"
)

// Platform is a chat platform the announcement is broadcast on.
type Platform interface {
	Name() string
	Guilds(ctx context.Context) ([]domain.Guild, error)
	// Channel resolves a channel ID; unknown channels return errors.ErrChannelNotFound.
	Channel(ctx context.Context, channelID string) (*domain.Channel, error)
	Send(ctx context.Context, channelID string, notification domain.Notification) error
}

type EntrySource interface {
	Latest(ctx context.Context) (*feedDomain.Entry, error)
}

type CacheStore interface {
	Load() (*cacheDomain.Cache, error)
	Save(cache *cacheDomain.Cache) error
}

type ChannelSettings interface {
	NotificationChannel(ctx context.Context, platform, guildID string) (string, bool, error)
}

// Recorder keeps track of announced entries.
type Recorder interface {
	Record(entry *feedDomain.Entry, delivered, failed int) error
}

// Service runs the fetch, compare, persist and deliver cycle
type Service struct {
	source    EntrySource
	cache     CacheStore
	settings  ChannelSettings
	recorder  Recorder
	platforms []Platform
	policy    config.CachePolicy
	log       *slog.Logger
	now       func() time.Time

	mu sync.Mutex
}

// New creates a new notifier service. recorder may be nil.
func New(
	cfg *config.Config,
	source EntrySource,
	cache CacheStore,
	settings ChannelSettings,
	recorder Recorder,
	platforms []Platform,
	log *slog.Logger,
) *Service {
	return &Service{
		source:    source,
		cache:     cache,
		settings:  settings,
		recorder:  recorder,
		platforms: platforms,
		policy:    cfg.CachePolicy,
		log:       log,
		now:       time.Now,
	}
}

// Run performs one notifier run. Concurrent calls are serialised.
//
// The cache is written before anything is sent, so an entry is announced at
// most once even if the process dies mid-broadcast. Failures of individual
// destinations do not stop the broadcast; they are joined into an
// errors.ErrDeliveryFailed once every destination has been tried.
func (s *Service) Run(ctx context.Context) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &domain.Report{
		StartedAt:  s.now().UTC(),
		Deliveries: []domain.Delivery{},
	}
	defer func() {
		report.FinishedAt = s.now().UTC()
	}()

	entry, err := s.source.Latest(ctx)
	if err != nil {
		return report, err
	}
	report.Entry = entry

	cache, err := s.cache.Load()
	if err != nil {
		if s.policy != config.CachePolicyBootstrap || !stderrors.Is(err, errors.ErrCacheNotFound) {
			return report, err
		}

		if err := s.cache.Save(&cacheDomain.Cache{ISODate: entry.ISODate}); err != nil {
			return report, err
		}
		report.Bootstrapped = true

		s.log.InfoContext(ctx, "Cache bootstrapped without announcing",
			"isoDate", entry.ISODate,
			"title", entry.Title)

		return report, nil
	}
	report.PreviousISODate = cache.ISODate

	if entry.ISODate == cache.ISODate {
		s.log.DebugContext(ctx, "No new feed entry",
			"isoDate", entry.ISODate)
		return report, nil
	}
	report.New = true

	if err := s.cache.Save(&cacheDomain.Cache{ISODate: entry.ISODate}); err != nil {
		return report, err
	}

	s.log.InfoContext(ctx, "New feed entry detected",
		"isoDate", entry.ISODate,
		"previousISODate", cache.ISODate,
		"title", entry.Title,
		"link", entry.Link)

	notification := domain.NewNotification(entry)

	var errs []error
	for _, platform := range s.platforms {
		errs = append(errs, s.broadcast(ctx, platform, notification, report)...)
	}

	if s.recorder != nil {
		if err := s.recorder.Record(entry, report.Sent(), report.Failed()); err != nil {
			s.log.WarnContext(ctx, "Failed to record announcement",
				"error", err,
				"isoDate", entry.ISODate)
		}
	}

	s.log.InfoContext(ctx, "Announcement broadcast finished",
		"isoDate", entry.ISODate,
		"sent", report.Sent(),
		"skipped", report.Skipped(),
		"failed", report.Failed())

	if len(errs) > 0 {
		return report, oops.
			In("notifier").
			Code("delivery_failed").
			With("iso_date", entry.ISODate, "failures", len(errs)).
			Wrap(fmt.Errorf("%w: %w", errors.ErrDeliveryFailed, stderrors.Join(errs...)))
	}

	return report, nil
}

func (s *Service) broadcast(
	ctx context.Context,
	platform Platform,
	notification domain.Notification,
	report *domain.Report,
) []error {
	guilds, err := platform.Guilds(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list guilds",
			"error", err,
			"platform", platform.Name())
		return []error{oops.With("platform", platform.Name()).Wrap(err)}
	}

	var errs []error
	for _, guild := range guilds {
		if err := ctx.Err(); err != nil {
			return append(errs, err)
		}

		delivery := s.deliver(ctx, platform, guild, notification)
		report.Deliveries = append(report.Deliveries, delivery.Delivery)

		switch delivery.Status {
		case domain.DeliveryStatusFailed:
			s.log.ErrorContext(ctx, "Failed to deliver announcement",
				"error", delivery.err,
				"platform", delivery.Platform,
				"guildID", delivery.GuildID,
				"channelID", delivery.ChannelID)
			errs = append(errs, delivery.err)
		case domain.DeliveryStatusSkipped:
			s.log.DebugContext(ctx, "Destination skipped",
				"platform", delivery.Platform,
				"guildID", delivery.GuildID,
				"channelID", delivery.ChannelID,
				"reason", delivery.Reason)
		default:
			s.log.InfoContext(ctx, "Announcement sent",
				"platform", delivery.Platform,
				"guildID", delivery.GuildID,
				"guildName", delivery.GuildName,
				"channelID", delivery.ChannelID)
		}
	}

	return errs
}

type outcome struct {
	domain.Delivery
	err error
}

// deliver checks the guild in order: setting, lookup error, availability,
// channel, owning guild, kind, permissions.
func (s *Service) deliver(
	ctx context.Context,
	platform Platform,
	guild domain.Guild,
	notification domain.Notification,
) outcome {
	result := outcome{Delivery: domain.Delivery{
		Destination: domain.Destination{
			Platform:  platform.Name(),
			GuildID:   guild.ID,
			GuildName: guild.Name,
		},
	}}

	skip := func(reason domain.SkipReason) outcome {
		result.Status = domain.DeliveryStatusSkipped
		result.Reason = reason
		return result
	}
	fail := func(err error) outcome {
		result.Status = domain.DeliveryStatusFailed
		result.err = oops.
			In("notifier").
			With("platform", result.Platform, "guild_id", result.GuildID, "channel_id", result.ChannelID).
			Wrap(err)
		result.Error = err.Error()
		return result
	}

	channelID, ok, err := s.settings.NotificationChannel(ctx, platform.Name(), guild.ID)
	if err != nil {
		return fail(err)
	}
	if !ok {
		return skip(domain.SkipReasonNoSetting)
	}
	result.ChannelID = channelID

	if guild.Err != nil {
		return fail(guild.Err)
	}
	if !guild.Available {
		return skip(domain.SkipReasonGuildUnavailable)
	}

	channel, err := platform.Channel(ctx, channelID)
	if err != nil {
		if stderrors.Is(err, errors.ErrChannelNotFound) {
			return skip(domain.SkipReasonChannelNotFound)
		}
		return fail(err)
	}
	if channel.GuildID != "" && channel.GuildID != guild.ID {
		return skip(domain.SkipReasonForeignChannel)
	}

	if reason, ok := channel.Check(); !ok {
		return skip(reason)
	}

	if err := platform.Send(ctx, channelID, notification); err != nil {
		return fail(err)
	}

	result.Status = domain.DeliveryStatusSent
	return result
}
