package domain

// Permission is the set of capabilities the bot holds on a channel
type Permission uint8

const (
	PermissionRead Permission = 1 << iota
	PermissionSend
)

// Has reports whether every permission in required is present.
func (p Permission) Has(required Permission) bool {
	return p&required == required
}

// Guild is a server or community unit on a chat platform. Err is set when
// the platform could not tell whether the guild is still reachable.
type Guild struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Err       error  `json:"-"`
}

// Channel is a resolved chat channel together with the bot's permissions on it
type Channel struct {
	ID          string      `json:"id"`
	GuildID     string      `json:"guild_id"`
	Name        string      `json:"name"`
	Kind        ChannelKind `json:"kind"`
	Permissions Permission  `json:"permissions"`
}

// TextCapable reports whether messages can be posted to the channel.
func (c *Channel) TextCapable() bool {
	return c.Kind == ChannelKindText || c.Kind == ChannelKindNews
}

// Check returns the reason an announcement must not be posted to the channel.
func (c *Channel) Check() (SkipReason, bool) {
	if !c.TextCapable() {
		return SkipReasonNotTextChannel, false
	}
	if !c.Permissions.Has(PermissionRead | PermissionSend) {
		return SkipReasonMissingPermissions, false
	}
	return "", true
}
