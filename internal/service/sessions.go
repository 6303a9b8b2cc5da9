package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/creaturemap/internal/draft"
	"github.com/mmynk/creaturemap/internal/metrics"
	"github.com/mmynk/creaturemap/internal/models"
)

// draftSession is one open map screen. mu serializes every transition,
// including the gateway call inside Submit.
type draftSession struct {
	mu      sync.Mutex
	owner   string
	reducer *draft.Reducer

	// guarded by sessionRegistry.mu
	lastUsed time.Time
}

// sessionRegistry holds open drafts and expires idle ones.
type sessionRegistry struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*draftSession
}

func newSessionRegistry(ttl time.Duration) *sessionRegistry {
	return &sessionRegistry{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*draftSession),
	}
}

func (r *sessionRegistry) add(owner string, reducer *draft.Reducer) string {
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &draftSession{owner: owner, reducer: reducer, lastUsed: r.now()}
	r.mu.Unlock()

	metrics.DraftSessions.Inc()
	return id
}

// get returns the session if owner opened it. Sessions of other owners
// are reported as missing.
func (r *sessionRegistry) get(id, owner string) (*draftSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok || sess.owner != owner {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("draft session %q not found", id))
	}
	sess.lastUsed = r.now()
	return sess, nil
}

func (r *sessionRegistry) remove(id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok || sess.owner != owner {
		return connect.NewError(connect.CodeNotFound, fmt.Errorf("draft session %q not found", id))
	}
	delete(r.sessions, id)
	metrics.DraftSessions.Dec()
	return nil
}

// sweep drops sessions idle for longer than the TTL and returns how many.
func (r *sessionRegistry) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, sess := range r.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	metrics.DraftSessions.Sub(float64(n))
	return n
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// run sweeps until ctx is done.
func (r *sessionRegistry) run(ctx context.Context) {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.sweep(); n > 0 {
				slog.Info("Expired idle draft sessions", "count", n)
			}
		}
	}
}

// meteredGateway counts the writes draft sessions make.
type meteredGateway struct {
	draft.Gateway
}

func (g meteredGateway) CreateObservation(ctx context.Context, obs *models.Observation) error {
	err := g.Gateway.CreateObservation(ctx, obs)
	metrics.DraftWrites.WithLabelValues("create", result(err)).Inc()
	return err
}

func (g meteredGateway) UpdateObservation(ctx context.Context, obs *models.Observation) (int64, error) {
	n, err := g.Gateway.UpdateObservation(ctx, obs)
	metrics.DraftWrites.WithLabelValues("update", result(err)).Inc()
	return n, err
}

func (g meteredGateway) DeleteObservation(ctx context.Context, id int64) (int64, error) {
	n, err := g.Gateway.DeleteObservation(ctx, id)
	metrics.DraftWrites.WithLabelValues("delete", result(err)).Inc()
	return n, err
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
