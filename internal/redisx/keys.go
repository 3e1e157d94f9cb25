package redisx

import "time"

const (
	// Merged settings record: settings:{id} -> JSON
	KeySettings = "settings:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Revoked admin session: session:revoked:{jti}
	KeyRevokedSession = "session:revoked:%s"
)

var (
	TTLSettings = 10 * time.Minute
	TTLDedup    = 48 * time.Hour
)
