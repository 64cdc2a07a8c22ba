package helpers

import (
	"time"

	"xui-sub-bot/internal/constants"
)

// IsExpired reports whether an expiry timestamp (epoch ms) has passed.
// A zero expiry means unlimited and never expires.
func IsExpired(expiryMs, nowMs int64) bool {
	return expiryMs != 0 && expiryMs < nowMs
}

// IsExpiredNow is IsExpired evaluated against the current clock
func IsExpiredNow(expiryMs int64) bool {
	return IsExpired(expiryMs, time.Now().UnixMilli())
}

// NextExpiry computes the expiry after extending by the given number of days.
// Extension adds to whichever is later of now and the current expiry, so
// re-submitting can never shorten an active subscription.
func NextExpiry(nowMs, currentMs int64, days int) int64 {
	base := nowMs
	if currentMs > base {
		base = currentMs
	}
	return base + int64(days)*constants.MillisecondsInDay
}

// ExpiryFromNow computes a fresh expiry for a brand new subscription
func ExpiryFromNow(nowMs int64, days int) int64 {
	return nowMs + int64(days)*constants.MillisecondsInDay
}

// FormatExpiry renders an expiry timestamp for display; zero is unlimited
func FormatExpiry(expiryMs int64, unlimited string) string {
	if expiryMs == 0 {
		return unlimited
	}
	return time.UnixMilli(expiryMs).Format(constants.TimestampFormat)
}
