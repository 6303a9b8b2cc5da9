// Package location keeps the last-known position of each device and feeds
// it to map screens.
//
// Devices report fixes as they get them; a per-device limiter drops fixes
// arriving faster than the configured interval. Devices are scoped to the
// owner reporting them, so the same device ID under another owner is a
// different device. A map screen subscribes
// while it is active and unsubscribes by cancelling its context.
package location

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmynk/creaturemap/internal/models"
)

// DefaultInterval matches the fastest update interval the client requests
// from the platform location service.
const DefaultInterval = 15 * time.Second

// Fix is a position report.
type Fix struct {
	Point models.Point
	At    time.Time
}

type deviceKey struct {
	owner string
	id    string
}

type device struct {
	limiter *rate.Limiter
	last    *Fix
	subs    map[chan Fix]struct{}
}

// Tracker stores last-known fixes per device.
type Tracker struct {
	interval time.Duration

	mu      sync.Mutex
	devices map[deviceKey]*device
}

// NewTracker creates a tracker accepting at most one fix per interval per
// device. interval <= 0 accepts every fix.
func NewTracker(interval time.Duration) *Tracker {
	return &Tracker{interval: interval, devices: make(map[deviceKey]*device)}
}

func (t *Tracker) deviceLocked(key deviceKey) *device {
	d, ok := t.devices[key]
	if !ok {
		limit := rate.Inf
		if t.interval > 0 {
			limit = rate.Every(t.interval)
		}
		d = &device{limiter: rate.NewLimiter(limit, 1), subs: make(map[chan Fix]struct{})}
		t.devices[key] = d
	}
	return d
}

// Report records a fix for owner's deviceID. It returns false when the fix
// was dropped by the rate limit.
func (t *Tracker) Report(owner, deviceID string, fix Fix) bool {
	if fix.At.IsZero() {
		fix.At = time.Now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	d := t.deviceLocked(deviceKey{owner, deviceID})
	if !d.limiter.AllowN(fix.At, 1) {
		return false
	}
	d.last = &fix
	for ch := range d.subs {
		// one-slot buffer, newest fix wins
		select {
		case <-ch:
		default:
		}
		ch <- fix
	}
	return true
}

// Last returns the last-known fix of owner's deviceID.
func (t *Tracker) Last(owner, deviceID string) (Fix, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.devices[deviceKey{owner, deviceID}]
	if !ok || d.last == nil {
		return Fix{}, false
	}
	return *d.last, true
}

// Subscribe streams fixes for owner's deviceID until ctx is done. The last-known
// fix, if any, is delivered first. A slow reader only sees the newest fix.
func (t *Tracker) Subscribe(ctx context.Context, owner, deviceID string) <-chan Fix {
	ch := make(chan Fix, 1)

	t.mu.Lock()
	d := t.deviceLocked(deviceKey{owner, deviceID})
	if d.last != nil {
		ch <- *d.last
	}
	d.subs[ch] = struct{}{}
	t.mu.Unlock()

	out := make(chan Fix)
	go func() {
		defer close(out)
		defer func() {
			t.mu.Lock()
			delete(d.subs, ch)
			t.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case fix := <-ch:
				select {
				case out <- fix:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
