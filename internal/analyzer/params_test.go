package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParamsEmpty(t *testing.T) {
	assert.Nil(t, ParseParams(""))
	assert.Nil(t, ParseParams("   "))
}

func TestParseParamsPlain(t *testing.T) {
	params := ParseParams("a, b, c")
	require.Len(t, params, 3)
	assert.Equal(t, "a", params[0].Name)
	assert.Equal(t, "c", params[2].Name)
	assert.False(t, params[0].Optional)
}

func TestParseParamsTypedAndOptional(t *testing.T) {
	params := ParseParams("id: string, force?: boolean, limit: number = 10")
	require.Len(t, params, 3)

	assert.Equal(t, "id", params[0].Name)
	assert.Equal(t, "string", params[0].Type)
	assert.False(t, params[0].Optional)

	assert.Equal(t, "force", params[1].Name)
	assert.Equal(t, "boolean", params[1].Type)
	assert.True(t, params[1].Optional)

	assert.Equal(t, "limit", params[2].Name)
	assert.Equal(t, "number", params[2].Type)
	assert.Equal(t, "10", params[2].Default)
	assert.True(t, params[2].Optional)
}

func TestParseParamsPHPAndRest(t *testing.T) {
	params := ParseParams("$id, $options = null, ...rest")
	require.Len(t, params, 3)
	assert.Equal(t, "id", params[0].Name)
	assert.Equal(t, "options", params[1].Name)
	assert.Equal(t, "null", params[1].Default)
	assert.Equal(t, "rest", params[2].Name)
}

func TestParseParamsSkipsUnparseablePieces(t *testing.T) {
	// Destructured parameters do not match the name-first pattern.
	params := ParseParams("{a, b}, id")
	// The naive comma split cuts the destructuring apart; only pieces that
	// look like identifiers survive.
	require.Len(t, params, 1)
	assert.Equal(t, "id", params[0].Name)
}
