// file: internal/itl/assemble_test.go
// version: 1.2.0
// guid: e7f80912-2334-4556-677a-8b9c0d1e2f30

package itl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/itl-exporter/internal/testutil"
)

func trackStream(parts ...[]byte) []byte {
	var stream []byte
	for _, p := range parts {
		stream = append(stream, p...)
	}
	return stream
}

func TestAssembleTracks(t *testing.T) {
	stream := trackStream(
		testutil.TrackEntryChunk(1),
		testutil.TextFieldChunk(fieldTitle, testutil.EncodeUTF16LE("A")),
		testutil.TrackEntryChunk(2),
		testutil.TextFieldChunk(fieldTitle, testutil.EncodeUTF16LE("B")),
	)

	lib, err := decodeStream(stream)
	require.NoError(t, err)

	require.Len(t, lib.Tracks, 2)
	assert.Equal(t, "A", lib.Tracks[1].Title)
	assert.Equal(t, "B", lib.Tracks[2].Title)
	assert.Empty(t, lib.Playlists)
}

func TestAssemblePlaylistAtEndOfStream(t *testing.T) {
	stream := trackStream(
		testutil.PlaylistCountChunk(2),
		testutil.TextFieldChunk(fieldPlaylistTitle, testutil.EncodeUTF16LE("Mix")),
		testutil.PlaylistKeyChunk(1),
		testutil.PlaylistKeyChunk(2),
	)

	lib, err := decodeStream(stream)
	require.NoError(t, err)

	require.Contains(t, lib.Playlists, "Mix")
	assert.Equal(t, []int{1, 2}, lib.Playlists["Mix"].Items)
}

func TestAssemblePlaylistEntryOrderPreserved(t *testing.T) {
	ids := []uint32{9, 3, 7, 1, 5}
	stream := testutil.PlaylistCountChunk(uint32(len(ids)))
	stream = append(stream, testutil.TextFieldChunk(fieldPlaylistTitle, testutil.EncodeUTF16LE("Shuffled"))...)
	for _, id := range ids {
		stream = append(stream, testutil.PlaylistKeyChunk(id)...)
	}

	lib, err := decodeStream(stream)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 3, 7, 1, 5}, lib.Playlists["Shuffled"].Items)
}

func TestAssembleDuplicateSongIDLastWriteWins(t *testing.T) {
	stream := trackStream(
		testutil.TrackEntryChunk(1),
		testutil.TextFieldChunk(fieldTitle, testutil.EncodeUTF16LE("First")),
		testutil.TextFieldChunk(fieldArtist, testutil.EncodeUTF16LE("Someone")),
		testutil.TrackEntryChunk(1),
		testutil.TextFieldChunk(fieldTitle, testutil.EncodeUTF16LE("Second")),
	)

	lib, err := decodeStream(stream)
	require.NoError(t, err)

	require.Len(t, lib.Tracks, 1)
	got := lib.Tracks[1]
	assert.Equal(t, "Second", got.Title)
	assert.Empty(t, got.Artist, "fields must not leak across a track boundary")
}

func TestAssembleFieldOverwriteWithinTrack(t *testing.T) {
	stream := trackStream(
		testutil.TrackEntryChunk(3),
		testutil.TextFieldChunk(fieldAlbumTitle, testutil.EncodeUTF16LE("Draft")),
		testutil.TextFieldChunk(fieldAlbumTitle, testutil.EncodeUTF16LE("Final")),
	)

	lib, err := decodeStream(stream)
	require.NoError(t, err)
	assert.Equal(t, "Final", lib.Tracks[3].Album)
}

func TestAssembleAllTrackFields(t *testing.T) {
	stream := trackStream(
		testutil.TrackEntryChunk(11),
		testutil.TextFieldChunk(fieldTitle, testutil.EncodeUTF16LE("Jóga")),
		testutil.TextFieldChunk(fieldArtist, testutil.EncodeUTF16LE("Björk")),
		testutil.TextFieldChunk(fieldAlbumTitle, testutil.EncodeUTF16LE("Homogenic")),
		testutil.TextFieldChunk(fieldLocalPath, testutil.EncodeUTF16LE("file://localhost/C:/Music/joga.mp3")),
	)

	lib, err := decodeStream(stream)
	require.NoError(t, err)

	got := lib.Tracks[11]
	assert.Equal(t, "Jóga", got.Title)
	assert.Equal(t, "Björk", got.Artist)
	assert.Equal(t, "Homogenic", got.Album)
	assert.Equal(t, "file://localhost/C:/Music/joga.mp3", got.Path)
}

func TestAssemblePlaylistTitleDoesNotTouchTrack(t *testing.T) {
	stream := trackStream(
		testutil.TrackEntryChunk(1),
		testutil.TextFieldChunk(fieldTitle, testutil.EncodeUTF16LE("Song")),
		testutil.PlaylistCountChunk(1),
		testutil.TextFieldChunk(fieldPlaylistTitle, testutil.EncodeUTF16LE("List")),
		testutil.PlaylistKeyChunk(1),
	)

	lib, err := decodeStream(stream)
	require.NoError(t, err)

	assert.Equal(t, "Song", lib.Tracks[1].Title)
	require.Contains(t, lib.Playlists, "List")
	assert.Equal(t, []int{1}, lib.Playlists["List"].Items)
}

func TestAssembleMalformedStreamYieldsNoPartialTables(t *testing.T) {
	stream := trackStream(
		testutil.TrackEntryChunk(1),
		testutil.Chunk("zzzz", nil),
	)

	lib, err := decodeStream(stream)
	assert.ErrorIs(t, err, ErrUnknownChunkTag)
	assert.Nil(t, lib)
}

func TestDecodeLibraryEndToEnd(t *testing.T) {
	records := trackStream(
		testutil.Chunk("hdsm", testutil.U32(16, 1)),
		testutil.MarkerChunk("htlm"),
		testutil.TrackEntryChunk(1),
		testutil.TextFieldChunk(fieldTitle, testutil.EncodeUTF16LE("Army of Me")),
		testutil.TrackEntryChunk(2),
		testutil.TextFieldChunk(fieldTitle, testutil.EncodeUTF16LE("Hyperballad")),
		testutil.MarkerChunk("hplm"),
		testutil.PlaylistCountChunk(2),
		testutil.TextFieldChunk(fieldPlaylistTitle, testutil.EncodeUTF16LE("Post")),
		testutil.PlaylistKeyChunk(1),
		testutil.PlaylistKeyChunk(2),
	)
	header := testutil.ContainerHeader("12.0.1", 1<<20)
	container := testutil.SealContainer(header, records)

	lib, err := DecodeLibrary(container)
	require.NoError(t, err)

	assert.Equal(t, "12.0.1", lib.Version)
	assert.Len(t, lib.Tracks, 2)
	assert.Equal(t, "Army of Me", lib.Tracks[1].Title)
	require.Contains(t, lib.Playlists, "Post")
	assert.Equal(t, []int{1, 2}, lib.Playlists["Post"].Items)
	assert.False(t, lib.LittleEndian)
	assert.Equal(t, 2, lib.ChunkCounts["htim"])
	assert.Equal(t, 1, lib.ChunkCounts["hdfm"])
}

func TestDecodeLibraryDeterministic(t *testing.T) {
	records := trackStream(
		testutil.TrackEntryChunk(1),
		testutil.TextFieldChunk(fieldTitle, testutil.EncodeUTF16LE("Same")),
	)
	container := testutil.SealContainer(testutil.ContainerHeader("12.0", 1<<20), records)

	first, err := DecodeLibrary(container)
	require.NoError(t, err)
	second, err := DecodeLibrary(container)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidate(t *testing.T) {
	records := testutil.MarkerChunk("hghm")
	good := testutil.SealContainer(testutil.ContainerHeader("12.0", 1<<20), records)
	assert.NoError(t, Validate(good))

	bad := testutil.SealContainer(testutil.ContainerHeader("12.0", 1<<20), testutil.Chunk("xxxx", nil))
	assert.ErrorIs(t, Validate(bad), ErrUnknownChunkTag)
}
