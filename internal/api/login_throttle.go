package api

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrigoal/internal/services"
)

const (
	loginFailureLimit  = 8
	loginFailureWindow = 15 * time.Minute
)

type failureBucket struct {
	openedAt time.Time
	count    int
}

// loginThrottle counts failed logins per key. A bucket opens on the first
// failure and is discarded once window has passed since it opened.
type loginThrottle struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]failureBucket
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{limit: limit, window: window, buckets: map[string]failureBucket{}}
}

func (throttle *loginThrottle) exhausted(key string, now time.Time) bool {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	bucket, ok := throttle.liveBucket(key, now)
	return ok && bucket.count >= throttle.limit
}

func (throttle *loginThrottle) recordFailure(key string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	bucket, ok := throttle.liveBucket(key, now)
	if !ok {
		bucket = failureBucket{openedAt: now}
	}
	bucket.count++
	throttle.buckets[key] = bucket

	for other, stale := range throttle.buckets {
		if now.Sub(stale.openedAt) >= throttle.window {
			delete(throttle.buckets, other)
		}
	}
}

func (throttle *loginThrottle) forget(key string) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.buckets, key)
}

// liveBucket must be called with mu held.
func (throttle *loginThrottle) liveBucket(key string, now time.Time) (failureBucket, bool) {
	bucket, ok := throttle.buckets[key]
	if !ok {
		return failureBucket{}, false
	}
	if now.Sub(bucket.openedAt) >= throttle.window {
		delete(throttle.buckets, key)
		return failureBucket{}, false
	}
	return bucket, true
}

// loginThrottleKey scopes failures to one client address and one account.
func loginThrottleKey(c *fiber.Ctx, email string) string {
	address := c.IP()
	if address == "" {
		address = "unknown"
	}
	return address + "|" + services.NormalizeAuthEmail(email)
}
