package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWideRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "C:\\Users\\jürgen\\ファイル.txt", "emoji 🎉", "a\nb\n"} {
		units, err := EncodeWide(s)
		require.NoError(t, err)
		require.NotEmpty(t, units)
		assert.Zero(t, units[len(units)-1], "terminator")

		got, err := DecodeWide(units[:len(units)-1])
		require.NoError(t, err)
		assert.Equal(t, s, got)

		got, err = WideString(&units[0])
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestWideString_Nil(t *testing.T) {
	got, err := WideString(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeWide_UnitWidth(t *testing.T) {
	units, err := EncodeWide("ab")
	require.NoError(t, err)
	assert.Equal(t, []Wchar{'a', 'b', 0}, units)
}
