package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	feedDomain "github.com/reshetovitsme/bump-notifier/internal/modules/feed/domain"
	"github.com/reshetovitsme/bump-notifier/internal/modules/history/domain"
	"github.com/reshetovitsme/bump-notifier/internal/modules/history/repository"
	"github.com/samber/oops"
)

const feedItemLimit = 50

// Service keeps the list of announced entries and republishes it as a feed
type Service struct {
	repo repository.Repository
	now  func() time.Time
}

// New creates a new history service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record stores an announced entry together with its delivery counts.
func (s *Service) Record(entry *feedDomain.Entry, delivered, failed int) error {
	return s.repo.SaveAnnouncement(&domain.Announcement{
		Entry:       *entry,
		AnnouncedAt: s.now().UTC(),
		Delivered:   delivered,
		Failed:      failed,
	})
}

// Recent returns up to limit announcements, newest first.
func (s *Service) Recent(limit int) ([]*domain.Announcement, error) {
	return s.repo.GetAnnouncements(limit)
}

// GenerateFeed builds a feed of the announced entries
func (s *Service) GenerateFeed(baseURL string) (*feeds.Feed, error) {
	announcements, err := s.repo.GetAnnouncements(feedItemLimit)
	if err != nil {
		return nil, oops.With("context", "failed to get announcements").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       "Bump notifier announcements",
		Link:        &feeds.Link{Href: baseURL + "/rss"},
		Description: "Feed entries broadcast to chat channels",
		Created:     s.now().UTC(),
	}

	if len(announcements) > 0 {
		feed.Updated = announcements[0].AnnouncedAt
	}

	for _, announcement := range announcements {
		feed.Items = append(feed.Items, announcementToFeedItem(announcement))
	}

	return feed, nil
}

func announcementToFeedItem(a *domain.Announcement) *feeds.Item {
	created := a.AnnouncedAt
	if published, err := time.Parse(feedDomain.ISODateLayout, a.Entry.ISODate); err == nil {
		created = published
	}

	content := "<p>" + strings.ReplaceAll(html.EscapeString(a.Entry.Summary), "\n", "<br/>") + "</p>"
	content += fmt.Sprintf("<p><em>Delivered to %d channel(s), %d failed.</em></p>", a.Delivered, a.Failed)

	return &feeds.Item{
		Title:       a.Entry.Title,
		Link:        &feeds.Link{Href: a.Entry.Link},
		Description: a.Entry.Summary,
		Content:     content,
		Created:     created,
		Updated:     a.AnnouncedAt,
		Id:          a.Entry.Link + "#" + a.Entry.ISODate,
	}
}
