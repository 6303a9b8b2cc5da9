package navigation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestPathAndParse(t *testing.T) {
	tests := []struct {
		target Target
		path   string
	}{
		{List{}, "list"},
		{AddCreature{CategoryID: 3}, "add/3"},
		{Map{CreatureID: 5, Name: "Grey heron", CategoryID: 1}, "map/5/Grey%20heron/1"},
		{Map{CreatureID: 5, Name: "Heron", CategoryID: 1, Memo: ptr("river & pond")}, "map/5/Heron/1?memo=river+%26+pond"},
		{EditCreature{CreatureID: 8, Name: "a/b", CategoryID: 0, Memo: ptr("")}, "edit/8/a%2Fb/0?memo="},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.path, tt.target.Path())

			got, err := Parse(tt.path)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.target, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.path, diff)
			}
		})
	}
}

func TestParseLeadingSlash(t *testing.T) {
	got, err := Parse("/add/2")
	require.NoError(t, err)
	assert.Equal(t, AddCreature{CategoryID: 2}, got)
}

func TestParseErrors(t *testing.T) {
	for _, path := range []string{"", "settings", "add", "add/x", "map/5/Heron", "map/-1/Heron/2", "edit/5/Heron/two", "list/extra"} {
		t.Run(path, func(t *testing.T) {
			_, err := Parse(path)
			assert.Error(t, err)
		})
	}

	_, err := Parse("settings")
	assert.ErrorIs(t, err, ErrUnknownRoute)
}
