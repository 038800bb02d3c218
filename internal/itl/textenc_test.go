// file: internal/itl/textenc_test.go
// version: 1.0.0
// guid: b4c5d6e7-f809-1223-3445-56677a8b9c0d

package itl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/itl-exporter/internal/testutil"
)

func TestClassifyAndDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"even length, leading zero, latin1", []byte{0x00, 0x41}, "\x00A"},
		{"even length, trailing zero, utf16le", testutil.EncodeUTF16LE("Hi"), "Hi"},
		{"odd length falls back to latin1", []byte("abc"), "abc"},
		{"even length, no zero sentinel, latin1", []byte{0xE9, 0x61}, "éa"},
		{"single byte", []byte{0x41}, "A"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifyAndDecode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyAndDecodeUTF16RoundTrip(t *testing.T) {
	// Non-Latin text encoded as UTF-16LE has a zero high byte on its last
	// ASCII rune, which is what flips the classifier into UTF-16 mode.
	original := "Björk: Jóga!"
	decoded, err := classifyAndDecode(testutil.EncodeUTF16LE(original))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
