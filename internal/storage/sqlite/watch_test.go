package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/creaturemap/internal/models"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "stream closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	var zero T
	return zero
}

func TestWatchCreatures(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := store.WatchCreatures(ctx, 1)
	require.NoError(t, err)

	assert.Empty(t, receive(t, stream), "initial snapshot")

	heron := models.NewCreature(1, "Grey heron", "")
	require.NoError(t, store.CreateCreature(ctx, heron))
	snapshot := receive(t, stream)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Grey heron", snapshot[0].Name)

	_, err = store.UpdateCreature(ctx, heron.ID, "Heron", "")
	require.NoError(t, err)
	snapshot = receive(t, stream)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Heron", snapshot[0].Name)

	// A write to another category does not change this list, so nothing is
	// pushed; the next push is the delete.
	require.NoError(t, store.CreateCreature(ctx, models.NewCreature(0, "Carp", "")))
	_, err = store.DeleteCreature(ctx, heron.ID)
	require.NoError(t, err)
	assert.Empty(t, receive(t, stream))

	cancel()
	for range stream {
	}
}

func TestWatchObservations(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := models.NewCreature(1, "Grey heron", "")
	require.NoError(t, store.CreateCreature(ctx, c))

	stream, err := store.WatchObservations(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, receive(t, stream))

	obs := &models.Observation{CreatureID: c.ID, Count: 2, RecordedAt: time.Now()}
	require.NoError(t, store.CreateObservation(ctx, obs))
	snapshot := receive(t, stream)
	require.Len(t, snapshot, 1)
	assert.Equal(t, 2, snapshot[0].Count)

	// deleting the creature empties the observation stream
	_, err = store.DeleteCreature(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, receive(t, stream))

	cancel()
	for range stream {
	}
}

func TestWatchEndsOnClose(t *testing.T) {
	store, err := New(t.TempDir() + "/close.db")
	require.NoError(t, err)

	stream, err := store.WatchCreatures(context.Background(), 0)
	require.NoError(t, err)
	receive(t, stream)

	require.NoError(t, store.Close())

	select {
	case _, ok := <-stream:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after store.Close")
	}
}
