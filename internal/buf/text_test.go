package buf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextTruncatesAtCapacity(t *testing.T) {
	txt := NewText(8)
	require.True(t, txt.IsZero())

	n := txt.SetString("abcdefghij")
	require.Equal(t, 7, n)
	require.Equal(t, "abcdefg", txt.String())
	require.Equal(t, 8, txt.Cap())
}

func TestTextExactlyCapacityMinusOne(t *testing.T) {
	txt := NewText(4)
	require.Equal(t, 3, txt.SetString("xyz"))
	require.Equal(t, "xyz", txt.String())
}

func TestTextResetZeroesContent(t *testing.T) {
	txt := NewText(16)
	txt.SetString("Foo Bar")
	txt.Reset()
	require.True(t, txt.IsZero())
	require.Equal(t, "", txt.String())

	// Backing storage is cleared, not just re-sliced.
	require.True(t, bytes.Equal(txt.b[:cap(txt.b)], make([]byte, cap(txt.b))))
}

func TestTextCopiesBytesVerbatim(t *testing.T) {
	txt := NewText(16)
	raw := []byte{0xff, 0xfe, 'a', 0x00, 'b'}
	txt.Set(raw)
	require.Equal(t, raw, txt.Bytes())

	raw[0] = 'z'
	require.Equal(t, byte(0xff), txt.Bytes()[0], "Set must copy its input")
}

func TestTextMinimumCapacity(t *testing.T) {
	txt := NewText(0)
	require.Equal(t, 0, txt.SetString("abc"))
	require.True(t, txt.IsZero())
}
