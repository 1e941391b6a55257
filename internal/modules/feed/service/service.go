package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/reshetovitsme/bump-notifier/internal/modules/feed/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/samber/oops"
)

// Service fetches the watched feed
type Service struct {
	feedURL string
	parser  *gofeed.Parser
	log     *slog.Logger
}

// New creates a new feed service
func New(cfg *config.Config, log *slog.Logger) *Service {
	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgent
	parser.Client = &http.Client{Timeout: cfg.FeedTimeoutDuration()}

	return &Service{
		feedURL: cfg.FeedURL,
		parser:  parser,
		log:     log,
	}
}

// Latest returns the first entry of the feed in the order the feed lists them.
// Any fetch or parse problem is reported as errors.ErrFeedUnavailable.
func (s *Service) Latest(ctx context.Context) (*domain.Entry, error) {
	parsed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, oops.
			In("feed").
			Code("feed_unavailable").
			With("feed_url", s.feedURL).
			Wrap(fmt.Errorf("%w: %w", errors.ErrFeedUnavailable, err))
	}

	if len(parsed.Items) == 0 {
		return nil, oops.
			In("feed").
			Code("feed_unavailable").
			With("feed_url", s.feedURL).
			Wrap(fmt.Errorf("%w: feed has no entries", errors.ErrFeedUnavailable))
	}

	entry := ToEntry(parsed.Items[0])

	s.log.DebugContext(ctx, "Fetched latest feed entry",
		"feedURL", s.feedURL,
		"feedTitle", parsed.Title,
		"itemCount", len(parsed.Items),
		"isoDate", entry.ISODate,
		"title", entry.Title)

	return entry, nil
}

// ToEntry converts a parsed feed item into an Entry.
func ToEntry(item *gofeed.Item) *domain.Entry {
	entry := &domain.Entry{
		Title: item.Title,
		Link:  item.Link,
	}

	switch {
	case item.PublishedParsed != nil:
		entry.ISODate = domain.FormatISODate(*item.PublishedParsed)
	case item.UpdatedParsed != nil:
		entry.ISODate = domain.FormatISODate(*item.UpdatedParsed)
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	entry.Summary = Snippet(summary)

	return entry
}
