// file: internal/export/rewrite_test.go
// version: 1.0.0
// guid: 9aabbccd-3041-5263-7485-96a7b8c9daeb

package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestPathRewriter(t *testing.T) {
	r := &PathRewriter{
		SourcePrefix: "file://localhost/C:/Users/me/Music/",
		TargetPrefix: "/storage/external_sd/Music/",
	}

	tests := []struct {
		name     string
		in       string
		want     string
		matched  bool
	}{
		{
			name:    "prefix swap with unescape",
			in:      "file://localhost/C:/Users/me/Music/Bj%C3%B6rk/J%C3%B3ga.mp3",
			want:    "/storage/external_sd/Music/Björk/Jóga.mp3",
			matched: true,
		},
		{
			name:    "space escape",
			in:      "file://localhost/C:/Users/me/Music/Army%20of%20Me.mp3",
			want:    "/storage/external_sd/Music/Army of Me.mp3",
			matched: true,
		},
		{
			name:    "non-matching prefix excluded",
			in:      "file://localhost/D:/Other/track.mp3",
			matched: false,
		},
		{
			name:    "empty location excluded",
			in:      "",
			matched: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Rewrite(tt.in)
			assert.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPathRewriterNormalizesNFD(t *testing.T) {
	r := &PathRewriter{Normalize: true}

	got, ok := r.Rewrite("ö.mp3") // NFC composed form
	assert.True(t, ok)
	assert.Equal(t, norm.NFD.String("ö.mp3"), got)
	assert.NotEqual(t, "ö.mp3", got, "composed input must decompose")
}

func TestPathRewriterEmptyPrefixMatchesEverything(t *testing.T) {
	r := &PathRewriter{}
	got, ok := r.Rewrite("/any/path.mp3")
	assert.True(t, ok)
	assert.Equal(t, "/any/path.mp3", got)
}

func TestPathRewriterKeepsInvalidEscapes(t *testing.T) {
	r := &PathRewriter{}
	got, ok := r.Rewrite("/bad%zz/track.mp3")
	assert.True(t, ok)
	assert.Equal(t, "/bad%zz/track.mp3", got)
}
