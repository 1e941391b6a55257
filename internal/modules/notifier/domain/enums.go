//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// ChannelKind is the platform-neutral type of a chat channel
// ENUM(unknown,text,news,voice,category,thread,forum,private)
type ChannelKind string

// DeliveryStatus is the outcome of one destination in a run
// ENUM(sent,skipped,failed)
type DeliveryStatus string

// SkipReason explains why a destination did not receive the announcement
// ENUM(no_setting,guild_unavailable,channel_not_found,foreign_channel,not_text_channel,missing_permissions)
type SkipReason string
