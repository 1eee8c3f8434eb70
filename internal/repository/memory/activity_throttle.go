package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ActivityThrottle suppresses repeated last_active_at writes for the same
// member inside one throttle window. Losing the cache on restart only costs
// one extra write per user, so in-process state is fine here.
type ActivityThrottle struct {
	cache  *cache.Cache
	window time.Duration
}

func NewActivityThrottle(window time.Duration) *ActivityThrottle {
	return &ActivityThrottle{
		cache:  cache.New(window, 10*time.Minute),
		window: window,
	}
}

// ShouldRecord reports whether the user's activity should be written now and
// marks the user as recorded for the current window when it returns true.
func (t *ActivityThrottle) ShouldRecord(userId uuid.UUID) bool {
	key := userId.String()
	if _, found := t.cache.Get(key); found {
		return false
	}
	t.cache.Set(key, struct{}{}, cache.DefaultExpiration)
	return true
}

// Forget drops the throttle entry, forcing the next activity to be recorded.
func (t *ActivityThrottle) Forget(userId uuid.UUID) {
	t.cache.Delete(userId.String())
}
