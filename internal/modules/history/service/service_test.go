package service

import (
	"testing"
	"time"

	feedDomain "github.com/reshetovitsme/bump-notifier/internal/modules/feed/domain"
	"github.com/reshetovitsme/bump-notifier/internal/modules/history/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, limit int) *Service {
	t.Helper()

	repo, err := repository.NewFileStorage(t.TempDir(), limit)
	require.NoError(t, err)

	s := New(repo)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	return s
}

func TestRecordKeepsNewestFirstWithinLimit(t *testing.T) {
	s := newTestService(t, 2)

	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, s.Record(&feedDomain.Entry{Title: title, Link: "https://example.com/" + title}, 1, 0))
	}

	recent, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Entry.Title)
	assert.Equal(t, "two", recent[1].Entry.Title)

	recent, err = s.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
}

func TestGenerateFeed(t *testing.T) {
	s := newTestService(t, 10)

	require.NoError(t, s.Record(&feedDomain.Entry{
		Title:   "A post",
		Link:    "http://bumped.org/psublog/a-post/",
		ISODate: "2024-04-30T08:15:00.000Z",
		Summary: "First line\nSecond <line>",
	}, 3, 1))

	feed, err := s.GenerateFeed("http://localhost:8080")
	require.NoError(t, err)
	require.Len(t, feed.Items, 1)

	item := feed.Items[0]
	assert.Equal(t, "A post", item.Title)
	assert.Equal(t, "http://bumped.org/psublog/a-post/", item.Link.Href)
	assert.Equal(t, time.Date(2024, 4, 30, 8, 15, 0, 0, time.UTC), item.Created)
	assert.Contains(t, item.Content, "First line<br/>Second &lt;line&gt;")
	assert.Contains(t, item.Content, "Delivered to 3 channel(s), 1 failed.")

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "<title>A post</title>")
}

func TestGenerateFeedEmpty(t *testing.T) {
	s := newTestService(t, 10)

	feed, err := s.GenerateFeed("http://localhost:8080")
	require.NoError(t, err)
	assert.Empty(t, feed.Items)
	assert.Equal(t, "http://localhost:8080/rss", feed.Link.Href)
}
