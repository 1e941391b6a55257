package domain

import (
	"testing"

	feedDomain "github.com/reshetovitsme/bump-notifier/internal/modules/feed/domain"
	"github.com/stretchr/testify/assert"
)

func TestChannelCheck(t *testing.T) {
	tests := []struct {
		name       string
		channel    Channel
		wantOK     bool
		wantReason SkipReason
	}{
		{
			name:    "text with read and send",
			channel: Channel{Kind: ChannelKindText, Permissions: PermissionRead | PermissionSend},
			wantOK:  true,
		},
		{
			name:    "news with read and send",
			channel: Channel{Kind: ChannelKindNews, Permissions: PermissionRead | PermissionSend},
			wantOK:  true,
		},
		{
			name:       "voice channel",
			channel:    Channel{Kind: ChannelKindVoice, Permissions: PermissionRead | PermissionSend},
			wantReason: SkipReasonNotTextChannel,
		},
		{
			name:       "send only",
			channel:    Channel{Kind: ChannelKindText, Permissions: PermissionSend},
			wantReason: SkipReasonMissingPermissions,
		},
		{
			name:       "read only",
			channel:    Channel{Kind: ChannelKindText, Permissions: PermissionRead},
			wantReason: SkipReasonMissingPermissions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := tt.channel.Check()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestNewNotificationCopiesEntryVerbatim(t *testing.T) {
	entry := &feedDomain.Entry{
		Title:   "  Title with spaces  ",
		Link:    "http://bumped.org/psublog/a-post/?utm=1",
		ISODate: "2024-01-01T00:00:00.000Z",
		Summary: "Line one\nLine two",
	}

	n := NewNotification(entry)

	assert.Equal(t, 3447003, n.Color)
	assert.Equal(t, entry.Title, n.Title)
	assert.Equal(t, entry.Link, n.URL)
	assert.Equal(t, []Field{{Name: "Summary", Value: entry.Summary}}, n.Fields)
}

func TestReportCounts(t *testing.T) {
	r := &Report{Deliveries: []Delivery{
		{Status: DeliveryStatusSent},
		{Status: DeliveryStatusSkipped, Reason: SkipReasonNoSetting},
		{Status: DeliveryStatusSkipped, Reason: SkipReasonGuildUnavailable},
		{Status: DeliveryStatusFailed},
	}}

	assert.Equal(t, 1, r.Sent())
	assert.Equal(t, 2, r.Skipped())
	assert.Equal(t, 1, r.Failed())
}
