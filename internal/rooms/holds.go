package rooms

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const roomHoldKeyPrefix = "staybook:room_hold:"

// holdScript reserves the room for the session, or refreshes the TTL when
// the session already holds it. Returns 1 on success, 0 when another session
// holds the room.
var holdScript = redis.NewScript(`
	local holder = redis.call('GET', KEYS[1])
	if holder == false then
		redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
		return 1
	end
	if holder == ARGV[1] then
		redis.call('PEXPIRE', KEYS[1], ARGV[2])
		return 1
	end
	return 0
`)

// releaseOwnedScript drops the hold only when it belongs to the session, so
// a late release cannot free a hold another session has since acquired.
var releaseOwnedScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RoomHolds keeps short-lived reservations on rooms between the availability
// check and payment, so two concurrent sessions cannot be offered the same
// room. A hold is a single key with a TTL; it expires on its own when a
// session is abandoned without an explicit release.
type RoomHolds struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRoomHolds creates a hold tracker with the given hold lifetime.
func NewRoomHolds(client *redis.Client, ttl time.Duration) *RoomHolds {
	return &RoomHolds{redis: client, ttl: ttl}
}

func roomHoldKey(roomID string) string {
	return roomHoldKeyPrefix + roomID
}

// Hold reserves the room for the session. Holding a room the session already
// holds succeeds and refreshes the TTL; it returns false only when another
// session holds the room.
func (h *RoomHolds) Hold(ctx context.Context, roomID, sessionID string) (bool, error) {
	ok, err := holdScript.Run(ctx, h.redis, []string{roomHoldKey(roomID)},
		sessionID, h.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("room hold error: %w", err)
	}
	return ok == 1, nil
}

// IsHeld reports whether the room is held by a session other than the given
// one. An empty session ID reports any live hold.
func (h *RoomHolds) IsHeld(ctx context.Context, roomID, sessionID string) (bool, error) {
	holder, err := h.redis.Get(ctx, roomHoldKey(roomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("room hold error: %w", err)
	}
	return holder != sessionID, nil
}

// Release drops the hold on the room regardless of holder. Used when the
// booking commits: the hold has served its purpose.
func (h *RoomHolds) Release(ctx context.Context, roomID string) error {
	if err := h.redis.Del(ctx, roomHoldKey(roomID)).Err(); err != nil {
		return fmt.Errorf("room hold error: %w", err)
	}
	return nil
}

// ReleaseOwned drops the hold only if the session still holds it. Used on
// cancellation and session expiry, where the hold may already have lapsed
// and been taken by someone else.
func (h *RoomHolds) ReleaseOwned(ctx context.Context, roomID, sessionID string) error {
	if err := releaseOwnedScript.Run(ctx, h.redis, []string{roomHoldKey(roomID)}, sessionID).Err(); err != nil {
		return fmt.Errorf("room hold error: %w", err)
	}
	return nil
}
