package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreature(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Validate(NewCreature(1, "Grey heron", "by the river")))
	})

	t.Run("blank name", func(t *testing.T) {
		assert.Error(t, Validate(&Creature{CategoryID: 1, Name: "   "}))
	})

	t.Run("empty name", func(t *testing.T) {
		assert.Error(t, Validate(&Creature{CategoryID: 1}))
	})
}

func TestNewCreatureTrimsNameAndDropsEmptyMemo(t *testing.T) {
	c := NewCreature(2, "  Carp ", "")
	assert.Equal(t, "Carp", c.Name)
	assert.Nil(t, c.Memo)
	assert.Equal(t, "", c.MemoText())
}

func TestValidateObservation(t *testing.T) {
	ok := Observation{CreatureID: 5, Count: 1, Latitude: 35, Longitude: 139}
	require.NoError(t, Validate(ok))

	zeroCount := ok
	zeroCount.Count = 0
	assert.Error(t, Validate(zeroCount))

	badLat := ok
	badLat.Latitude = 91
	err := Validate(badLat)
	require.Error(t, err)
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsValidationError(errors.New("disk full")))
}

func TestValidationMessage(t *testing.T) {
	obs := Observation{CreatureID: 1, Count: 1, Memo: strings.Repeat("x", 2001)}
	assert.Equal(t, "memo must be at most 2000 characters", ValidationMessage(Validate(obs)))

	obs = Observation{Count: 0, Latitude: 91}
	msg := ValidationMessage(Validate(obs))
	assert.Contains(t, msg, "creature id must be greater than 0")
	assert.Contains(t, msg, "count must be at least 1")
	assert.Contains(t, msg, "latitude must be at most 90")
	assert.NotContains(t, msg, "Key:")

	assert.Equal(t, "disk full", ValidationMessage(errors.New("disk full")))
}

func TestMapMode(t *testing.T) {
	assert.Equal(t, MapModeNormal, MapModeSatellite.Toggle())
	assert.Equal(t, MapModeSatellite, MapModeNormal.Toggle())

	m, err := ParseMapMode("normal")
	require.NoError(t, err)
	assert.Equal(t, MapModeNormal, m)

	_, err = ParseMapMode("terrain")
	assert.Error(t, err)
}
