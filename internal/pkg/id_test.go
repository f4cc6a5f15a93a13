package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGameID(t *testing.T) {
	// When: two ids are generated
	first, err := GenerateGameID()
	require.NoError(t, err)

	second, err := GenerateGameID()
	require.NoError(t, err)

	// Then: they are URL-safe and distinct
	assert.Len(t, first, 16)
	assert.NotContains(t, first, "/")
	assert.NotContains(t, first, "+")
	assert.NotEqual(t, first, second)
}
