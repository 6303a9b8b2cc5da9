package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/creaturemap/internal/draft"
	"github.com/mmynk/creaturemap/internal/models"
)

type nopGateway struct{ err error }

func (g nopGateway) CreateObservation(context.Context, *models.Observation) error { return g.err }
func (g nopGateway) UpdateObservation(context.Context, *models.Observation) (int64, error) {
	return 1, g.err
}
func (g nopGateway) DeleteObservation(context.Context, int64) (int64, error) { return 1, g.err }

func TestSessionRegistrySweep(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := newSessionRegistry(10 * time.Minute)
	r.now = func() time.Time { return now }

	subject := draft.Subject{CreatureID: 1, CreatureName: "Heron", CategoryID: 1}
	idle := r.add("user", draft.New(nopGateway{}, subject))
	busy := r.add("user", draft.New(nopGateway{}, subject))

	now = now.Add(8 * time.Minute)
	_, err := r.get(busy, "user")
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, r.sweep())
	assert.Equal(t, 1, r.len())

	_, err = r.get(idle, "user")
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	_, err = r.get(busy, "user")
	assert.NoError(t, err)
}

func TestSessionRegistryOwner(t *testing.T) {
	r := newSessionRegistry(time.Minute)
	id := r.add("alice", draft.New(nopGateway{}, draft.Subject{CreatureID: 1, CreatureName: "Heron"}))

	_, err := r.get(id, "bob")
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	assert.Error(t, r.remove(id, "bob"))
	assert.NoError(t, r.remove(id, "alice"))
	assert.Zero(t, r.len())
}

func TestSessionRegistryRunStops(t *testing.T) {
	r := newSessionRegistry(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not stop")
	}
}

func TestMeteredGatewayPassesThrough(t *testing.T) {
	boom := errors.New("disk full")
	g := meteredGateway{nopGateway{err: boom}}

	assert.ErrorIs(t, g.CreateObservation(context.Background(), &models.Observation{}), boom)
	_, err := g.UpdateObservation(context.Background(), &models.Observation{})
	assert.ErrorIs(t, err, boom)
	n, err := g.DeleteObservation(context.Background(), 3)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), n)
}
