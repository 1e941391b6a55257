package domain

import (
	"time"

	feedDomain "github.com/reshetovitsme/bump-notifier/internal/modules/feed/domain"
)

// Announcement is a feed entry that was broadcast by a run
type Announcement struct {
	Entry       feedDomain.Entry `json:"entry"`
	AnnouncedAt time.Time        `json:"announced_at"`
	Delivered   int              `json:"delivered"`
	Failed      int              `json:"failed"`
}
