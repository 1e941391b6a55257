package domain

import "time"

// GuildSettings holds the string settings of one guild on one chat platform
type GuildSettings struct {
	Platform  string            `json:"platform"`
	GuildID   string            `json:"guild_id"`
	Values    map[string]string `json:"values"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Setting is a single key/value pair scoped to a guild
type Setting struct {
	Platform string
	GuildID  string
	Key      string
	Value    string
}
