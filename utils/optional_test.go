package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Title Optional[string]  `json:"title"`
	Video Optional[*string] `json:"video"`
}

func TestOptional_DistinguishesAbsentNullAndValue(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		var body patchBody
		require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
		assert.False(t, body.Title.Set)
		assert.False(t, body.Video.Set)
	})

	t.Run("explicit null", func(t *testing.T) {
		var body patchBody
		require.NoError(t, json.Unmarshal([]byte(`{"video": null}`), &body))
		assert.True(t, body.Video.Set)
		assert.True(t, body.Video.Null)
		assert.False(t, body.Video.HasValue())
	})

	t.Run("value", func(t *testing.T) {
		var body patchBody
		require.NoError(t, json.Unmarshal([]byte(`{"title": "Villa A"}`), &body))
		assert.True(t, body.Title.HasValue())
		assert.Equal(t, "Villa A", body.Title.Value)
	})

	t.Run("wrong type", func(t *testing.T) {
		var body patchBody
		assert.Error(t, json.Unmarshal([]byte(`{"title": 12}`), &body))
	})
}

func TestOptional_Marshal(t *testing.T) {
	out, err := json.Marshal(Some("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `"x"`, string(out))

	out, err = json.Marshal(Null[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
