package errors

import "errors"

var (
	ErrMissingFeedURL       = errors.New("FEED_URL must not be empty")
	ErrNoPlatforms          = errors.New("at least one of DISCORD_TOKEN or TELEGRAM_BOT_TOKEN is required")
	ErrUnsupportedBackend   = errors.New("unsupported settings backend")
	ErrFeedUnavailable      = errors.New("feed unavailable")
	ErrCacheRead            = errors.New("cache read failure")
	ErrCacheNotFound        = errors.New("cache file not found")
	ErrCacheWrite           = errors.New("cache write failure")
	ErrDeliveryFailed       = errors.New("delivery failed")
	ErrSettingNotFound      = errors.New("setting not found")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrPlatformNotConnected = errors.New("platform session is not connected")
)
