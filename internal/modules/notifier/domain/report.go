package domain

import (
	"time"

	feedDomain "github.com/reshetovitsme/bump-notifier/internal/modules/feed/domain"
	"github.com/samber/lo"
)

// Destination is a resolved (guild, channel) pair on a platform
type Destination struct {
	Platform  string `json:"platform"`
	GuildID   string `json:"guild_id"`
	GuildName string `json:"guild_name,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
}

// Delivery records what happened to one destination during a run
type Delivery struct {
	Destination
	Status DeliveryStatus `json:"status"`
	Reason SkipReason     `json:"reason,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Report summarises a single notifier run
type Report struct {
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      time.Time         `json:"finished_at"`
	Entry           *feedDomain.Entry `json:"entry,omitempty"`
	PreviousISODate string            `json:"previous_iso_date,omitempty"`
	New             bool              `json:"new"`
	Bootstrapped    bool              `json:"bootstrapped"`
	Deliveries      []Delivery        `json:"deliveries"`
}

func (r *Report) Sent() int {
	return r.count(DeliveryStatusSent)
}

func (r *Report) Skipped() int {
	return r.count(DeliveryStatusSkipped)
}

func (r *Report) Failed() int {
	return r.count(DeliveryStatusFailed)
}

func (r *Report) count(status DeliveryStatus) int {
	return lo.CountBy(r.Deliveries, func(d Delivery) bool {
		return d.Status == status
	})
}
