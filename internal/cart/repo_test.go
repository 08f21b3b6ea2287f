package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrsJSON_EqualSelectionsCollapse(t *testing.T) {
	a, err := attrsJSON(map[string]string{"Color": "Red", "Size": "M"})
	require.NoError(t, err)
	b, err := attrsJSON(map[string]string{" size ": " m ", "COLOR": "red"})
	require.NoError(t, err)

	// Equal selections must serialize to the same jsonb key, or the
	// ON CONFLICT merge in AddItem would create duplicate lines.
	assert.Equal(t, string(a), string(b))
	assert.JSONEq(t, `{"color":"red","size":"m"}`, string(a))
}

func TestAttrsJSON_EmptySelection(t *testing.T) {
	a, err := attrsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(a))

	b, err := attrsJSON(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestAttrsJSON_DifferentSelectionsDiffer(t *testing.T) {
	a, err := attrsJSON(map[string]string{"Color": "Red", "Size": "M"})
	require.NoError(t, err)
	b, err := attrsJSON(map[string]string{"Color": "Red", "Size": "L"})
	require.NoError(t, err)
	assert.NotEqual(t, string(a), string(b))
}
