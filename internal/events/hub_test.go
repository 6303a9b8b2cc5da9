package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHubDeliversToTopicSubscribers(t *testing.T) {
	h := NewHub()
	defer h.Close()

	creatures, cancelCreatures := h.Subscribe(TopicCreatures)
	defer cancelCreatures()
	observations, cancelObservations := h.Subscribe(TopicObservations)
	defer cancelObservations()

	h.Publish(Change{Topic: TopicCreatures, Op: OpInsert, ID: 7, ParentID: 2})

	select {
	case c := <-creatures:
		assert.Equal(t, int64(7), c.ID)
		assert.False(t, c.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected a creature change")
	}

	select {
	case c := <-observations:
		t.Fatalf("unexpected change on observations: %+v", c)
	default:
	}
}

func TestHubCoalescesPendingChanges(t *testing.T) {
	h := NewHub()
	defer h.Close()

	ch, cancel := h.Subscribe(TopicCreatures)
	defer cancel()

	for i := 0; i < 10; i++ {
		h.Publish(Change{Topic: TopicCreatures, Op: OpUpdate, ID: int64(i)})
	}

	c := <-ch
	assert.Equal(t, int64(0), c.ID, "first pending change is kept")
	select {
	case extra := <-ch:
		t.Fatalf("expected coalesced delivery, got %+v", extra)
	default:
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	h := NewHub()
	defer h.Close()

	ch, cancel := h.Subscribe(TopicPreferences)
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	// publishing after cancel must not panic
	h.Publish(Change{Topic: TopicPreferences, Op: OpUpdate})
}

func TestHubCloseClosesSubscribers(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(TopicCreatures)
	h.Close()

	_, ok := <-ch
	assert.False(t, ok)
	cancel()

	late, _ := h.Subscribe(TopicCreatures)
	_, ok = <-late
	assert.False(t, ok)
}

func TestHubHooks(t *testing.T) {
	h := NewHub()
	defer h.Close()

	var seen []Change
	h.OnPublish(func(c Change) { seen = append(seen, c) })

	h.Publish(Change{Topic: TopicObservations, Op: OpDelete, ID: 3})
	h.Publish(Change{Topic: TopicCreatures, Op: OpInsert, ID: 4})

	require.Len(t, seen, 2)
	assert.Equal(t, OpDelete, seen[0].Op)
	assert.Equal(t, TopicCreatures, seen[1].Topic)
}

func TestSubjectAndPayload(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	c := Change{Topic: TopicObservations, Op: OpInsert, ID: 12, ParentID: 5, At: at}

	assert.Equal(t, "creaturemap.observations.insert", Subject("creaturemap", c))

	data, err := encodeChange(c)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "observations", decoded["topic"])
	assert.Equal(t, float64(5), decoded["parent_id"])
	assert.NotContains(t, decoded, "owner")
}
