package constants

import "time"

// Redis cache keys and TTLs for the staybook services.
// Pattern: staybook:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_SHORT  = 6 * time.Hour   // room-type catalog
	TTL_SEMI_STATIC   = 1 * time.Hour   // room inventory listings
	TTL_DYNAMIC_SHORT = 5 * time.Minute // availability snapshots
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "staybook"
)

// ================== ROOMS MODULE ==================

const (
	CACHE_KEY_ROOM_TYPES_ALL = CACHE_PREFIX + ":rooms:types:all"
	CACHE_KEY_ROOM_TYPE_CODE = CACHE_PREFIX + ":rooms:types:code:" // + type-code
	CACHE_KEY_ROOMS_BY_TYPE  = CACHE_PREFIX + ":rooms:by_type:"    // + type-code
)

const (
	TTL_ROOM_TYPES = TTL_STATIC_SHORT
	TTL_ROOM_LISTS = TTL_SEMI_STATIC
)

// ================== HELPER FUNCTIONS ==================

func BuildRoomTypeKey(code string) string {
	return CACHE_KEY_ROOM_TYPE_CODE + code
}

func BuildRoomsByTypeKey(code string) string {
	return CACHE_KEY_ROOMS_BY_TYPE + code
}
