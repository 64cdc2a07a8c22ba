package constants

const (
	// Account naming constants
	EmailPrefix = "tg_"

	// Duration constants
	MillisecondsInDay = 24 * 60 * 60 * 1000
	MaxDurationDays   = 3650

	// Network constants
	DefaultTimeout = 30

	// Cache constants
	CacheExpiration      = 30 // minutes
	CacheCleanupInterval = 10 // minutes

	// Broadcast constants
	DefaultBroadcastDelayMs = 50

	// Link constants
	DefaultFingerprint = "chrome"
	DefaultLinkLabel   = "XUI_VPN"

	// Formatting constants
	TimestampFormat = "2006-01-02 15:04:05"
)
