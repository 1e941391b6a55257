package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/reshetovitsme/bump-notifier/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, feedURL string) *Service {
	t.Helper()

	return New(&config.Config{
		FeedURL:     feedURL,
		FeedTimeout: 5,
		UserAgent:   "bump-notifier-test",
	}, slog.Default())
}

func serveXML(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestLatestReturnsFirstEntryInFeedOrder(t *testing.T) {
	older := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 5, 10, 30, 15, 0, time.UTC)

	// The older entry is listed first on purpose: no re-sorting is expected.
	feed := &feeds.Feed{
		Title:       "PSU blog",
		Link:        &feeds.Link{Href: "http://bumped.org/psublog/"},
		Description: "news",
		Created:     newer,
		Items: []*feeds.Item{
			{
				Title:       "First listed",
				Link:        &feeds.Link{Href: "http://bumped.org/psublog/first/"},
				Description: "<p>Hello &amp; welcome</p><p>Second paragraph</p>",
				Created:     older,
			},
			{
				Title:       "Second listed",
				Link:        &feeds.Link{Href: "http://bumped.org/psublog/second/"},
				Description: "ignored",
				Created:     newer,
			},
		},
	}
	rss, err := feed.ToRss()
	require.NoError(t, err)

	srv := serveXML(t, rss)

	entry, err := newTestService(t, srv.URL).Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "First listed", entry.Title)
	assert.Equal(t, "http://bumped.org/psublog/first/", entry.Link)
	assert.Equal(t, "2024-03-01T08:00:00.000Z", entry.ISODate)
	assert.Equal(t, "Hello & welcome\nSecond paragraph", entry.Summary)
}

func TestLatestUsesAtomUpdatedWhenPublishedIsMissing(t *testing.T) {
	atom := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom blog</title>
  <id>urn:uuid:feed</id>
  <updated>2024-06-01T12:00:00+02:00</updated>
  <entry>
    <title>Atom entry</title>
    <link href="https://example.com/atom-entry"/>
    <id>urn:uuid:entry</id>
    <updated>2024-06-01T12:00:00+02:00</updated>
    <summary type="html">&lt;div&gt;Plain&lt;br/&gt;text&lt;/div&gt;</summary>
  </entry>
</feed>`

	srv := serveXML(t, atom)

	entry, err := newTestService(t, srv.URL).Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Atom entry", entry.Title)
	assert.Equal(t, "https://example.com/atom-entry", entry.Link)
	assert.Equal(t, "2024-06-01T10:00:00.000Z", entry.ISODate)
	assert.Equal(t, "Plain\ntext", entry.Summary)
}

func TestLatestHTTPErrorIsFeedUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	entry, err := newTestService(t, srv.URL).Latest(context.Background())
	require.Error(t, err)
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, errors.ErrFeedUnavailable)
}

func TestLatestMalformedFeedIsFeedUnavailable(t *testing.T) {
	srv := serveXML(t, "this is not a feed")

	_, err := newTestService(t, srv.URL).Latest(context.Background())
	assert.ErrorIs(t, err, errors.ErrFeedUnavailable)
}

func TestLatestEmptyFeedIsFeedUnavailable(t *testing.T) {
	rss, err := (&feeds.Feed{
		Title:   "Empty",
		Link:    &feeds.Link{Href: "https://example.com"},
		Created: time.Now(),
	}).ToRss()
	require.NoError(t, err)

	srv := serveXML(t, rss)

	_, err = newTestService(t, srv.URL).Latest(context.Background())
	assert.ErrorIs(t, err, errors.ErrFeedUnavailable)
}

func TestLatestUnreachableHostIsFeedUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestService(t, url).Latest(context.Background())
	assert.ErrorIs(t, err, errors.ErrFeedUnavailable)
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "   ", want: ""},
		{name: "plain text", in: "  just text  ", want: "just text"},
		{name: "inline markup", in: "<b>bold</b> and <a href=\"#\">link</a>", want: "bold and link"},
		{name: "paragraphs", in: "<p>one</p><p>two</p>", want: "one\ntwo"},
		{name: "line break", in: "a<br>b", want: "a\nb"},
		{name: "entities", in: "Tom &amp; Jerry &#8217;s", want: "Tom & Jerry ’s"},
		{name: "list", in: "<ul><li>x</li><li>y</li></ul>", want: "x\ny"},
		{name: "script dropped", in: "<p>keep</p><script>alert(1)</script>", want: "keep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Snippet(tt.in))
		})
	}
}
