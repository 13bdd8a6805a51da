package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionType(t *testing.T) {
	t.Run("accepts any casing", func(t *testing.T) {
		for _, s := range []string{"call", "Call", "CALL", " call "} {
			typ, err := ParseOptionType(s)
			require.NoError(t, err)
			assert.Equal(t, Call, typ)
		}

		typ, err := ParseOptionType("pUt")
		require.NoError(t, err)
		assert.Equal(t, Put, typ)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		_, err := ParseOptionType("straddle")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "straddle")

		_, err = ParseOptionType("")
		require.Error(t, err)
	})
}

func TestOptionTypeCSV(t *testing.T) {
	label, err := Call.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "Call", label)

	var typ OptionType
	require.NoError(t, typ.UnmarshalCSV("put"))
	assert.Equal(t, Put, typ)

	assert.Error(t, typ.UnmarshalCSV("x"))
}

func TestOptionTypeJSON(t *testing.T) {
	data, err := Put.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"Put"`, string(data))
}

func TestGreeksString(t *testing.T) {
	g := Greeks{Delta: 0.5, Gamma: 0.01, Vega: 0.2, Theta: -0.02, Rho: 0.4}
	s := g.String()
	assert.Contains(t, s, "Delta: 0.5000")
	assert.Contains(t, s, "Theta: -0.0200")
}
