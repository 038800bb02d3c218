// file: internal/itl/assemble.go
// version: 1.2.0
// guid: 4d5e6f70-8192-a3b4-c5d6-e7f809122334

package itl

import (
	"errors"
	"io"
)

// Track is one assembled track entity, keyed by its song ID.
type Track struct {
	SongID int    `json:"song_id" yaml:"song_id"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Artist string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Album  string `json:"album,omitempty" yaml:"album,omitempty"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Playlist is one assembled playlist entity, keyed by its title. Items
// preserve the order the entry records were seen in.
type Playlist struct {
	Title string `json:"title" yaml:"title"`
	Items []int  `json:"items" yaml:"items"`
}

// Library is the normalized output of a decode: the two entity tables plus
// stream-level metadata useful to callers.
type Library struct {
	Version   string            `json:"version,omitempty" yaml:"version,omitempty"`
	Tracks    map[int]Track     `json:"tracks" yaml:"tracks"`
	Playlists map[string]Playlist `json:"playlists" yaml:"playlists"`

	// ChunkCounts tallies decoded chunks by canonical tag.
	ChunkCounts map[string]int `json:"chunk_counts,omitempty" yaml:"chunk_counts,omitempty"`

	// LittleEndian reports whether the stream was written byte-reversed.
	LittleEndian bool `json:"little_endian,omitempty" yaml:"little_endian,omitempty"`
}

// assembler accumulates tracks and playlists from the record stream. An
// entity becomes visible in its table only when the next start marker (or
// end of stream) commits it, so later field records can still land on it.
type assembler struct {
	lib             *Library
	currentTrack    *Track
	currentPlaylist *Playlist
}

func newAssembler() *assembler {
	return &assembler{
		lib: &Library{
			Tracks:      make(map[int]Track),
			Playlists:   make(map[string]Playlist),
			ChunkCounts: make(map[string]int),
		},
	}
}

func (a *assembler) observe(rec Record) {
	a.lib.ChunkCounts[rec.recordTag()]++

	switch r := rec.(type) {
	case FileHeader:
		a.lib.Version = r.Version

	case TrackEntry:
		a.commitTrack()
		a.currentTrack = &Track{SongID: int(r.SongID)}

	case ObjectField:
		a.observeField(r)

	case PlaylistItemCount:
		a.commitPlaylist()
		a.currentPlaylist = &Playlist{Items: []int{}}

	case PlaylistEntryKey:
		if a.currentPlaylist != nil {
			a.currentPlaylist.Items = append(a.currentPlaylist.Items, int(r.Key))
		}
	}
}

func (a *assembler) observeField(f ObjectField) {
	if f.Type == fieldPlaylistTitle {
		if a.currentPlaylist != nil {
			a.currentPlaylist.Title = f.Text
		}
		return
	}
	if a.currentTrack == nil {
		return
	}
	switch f.Type {
	case fieldTitle:
		a.currentTrack.Title = f.Text
	case fieldAlbumTitle:
		a.currentTrack.Album = f.Text
	case fieldArtist:
		a.currentTrack.Artist = f.Text
	case fieldLocalPath:
		a.currentTrack.Path = f.Text
	}
}

// commitTrack moves the in-progress track into the table. Duplicate song
// IDs overwrite: last write wins.
func (a *assembler) commitTrack() {
	if a.currentTrack != nil {
		a.lib.Tracks[a.currentTrack.SongID] = *a.currentTrack
		a.currentTrack = nil
	}
}

func (a *assembler) commitPlaylist() {
	if a.currentPlaylist != nil {
		a.lib.Playlists[a.currentPlaylist.Title] = *a.currentPlaylist
		a.currentPlaylist = nil
	}
}

func (a *assembler) finish() *Library {
	a.commitTrack()
	a.commitPlaylist()
	return a.lib
}

// DecodeLibrary decodes a raw .itl container into its track and playlist
// tables. It is a single synchronous pass with no shared state; concurrent
// calls on distinct inputs are safe.
func DecodeLibrary(raw []byte) (*Library, error) {
	stream, err := openEnvelope(raw)
	if err != nil {
		return nil, err
	}
	return decodeStream(stream)
}

// decodeStream runs the chunk walker and assembler over an already-opened
// plaintext stream.
func decodeStream(stream []byte) (*Library, error) {
	w := newWalker(stream)
	a := newAssembler()
	for {
		rec, err := w.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		a.observe(rec)
	}
	lib := a.finish()
	lib.LittleEndian = w.flipped
	return lib, nil
}
