package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecName(t *testing.T) {
	assert.Equal(t, "json", Codec{}.Name())
}

func TestCodecUsesCamelCase(t *testing.T) {
	data, err := Codec{}.Marshal(&SetLocationRequest{SessionID: "s1", Latitude: 35, Longitude: 139})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessionId":"s1","latitude":35,"longitude":139}`, string(data))
}

func TestCodecOmitsEmptyDraftError(t *testing.T) {
	data, err := Codec{}.Marshal(&DraftState{Count: 1, MapMode: "satellite"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)
}

func TestCodecUnmarshalEmptyBody(t *testing.T) {
	var req BrowseRequest
	require.NoError(t, Codec{}.Unmarshal(nil, &req))
	assert.Nil(t, req.TabIndex)
}

func TestCodecUnmarshalError(t *testing.T) {
	var req SetCountRequest
	err := Codec{}.Unmarshal([]byte(`{"delta":"one"}`), &req)
	assert.Error(t, err)
}
