package domain

import "context"

// Cache keys. The featured-speaker slot is per conference; the announcement
// slot is global.
const (
	CacheKeyAnnouncements         = "recent_announcements"
	cacheKeyFeaturedSpeakerPrefix = "featured_speaker:"
)

// FeaturedSpeakerCacheKey returns the cache key for a conference's
// featured-speaker announcement.
func FeaturedSpeakerCacheKey(conferenceID string) string {
	return cacheKeyFeaturedSpeakerPrefix + conferenceID
}

// CacheStore is a process- or cluster-wide key/value cache with
// last-write-wins overwrite semantics and no TTL. Absence is a valid state:
// Get reports found=false for a missing key, not an error.
type CacheStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// FeaturedSpeakerService maintains the per-conference featured-speaker
// announcement in the cache store.
type FeaturedSpeakerService interface {
	// Recompute scans the conference's sessions, determines the speaker(s)
	// with the most sessions, and publishes an announcement to the cache,
	// overwriting any prior value. It is idempotent and safe to rerun.
	Recompute(ctx context.Context, conferenceID string) error
	// GetFeaturedSpeaker reads the cached announcement; "" if absent. It
	// never recomputes synchronously.
	GetFeaturedSpeaker(ctx context.Context, conferenceID string) (string, error)
}
