// file: internal/itl/record.go
// version: 1.2.0
// guid: 7c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e5f

package itl

// Chunk tags understood by the walker. Tags are 4 ASCII bytes; in
// little-endian libraries every tag appears byte-reversed on the wire.
const (
	tagFileHeader    = "hdfm" // file header with version string
	tagStreamHeader  = "hdsm" // data set boundary
	tagGlobalHolder  = "hghm" // global holder
	tagObjectField   = "hohm" // one named metadata value
	tagAlbumList     = "halm"
	tagAlbumItem     = "haim"
	tagArtworkList   = "hilm"
	tagArtworkItem   = "hiim"
	tagTrackList     = "htlm"
	tagTrackItem     = "htim" // start of a track's field group
	tagQueryList     = "hqlm"
	tagQueryItem     = "hqim"
	tagStringStore   = "hsts"
	tagPlaylistList  = "hplm"
	tagPlaylistItem  = "hpim" // start of a playlist's field group
	tagPlaylistEntry = "hptm" // one track reference inside a playlist
	tagSortList      = "hslm"
	tagPlaylistSet   = "hpsm"
	tagArtistList    = "hrlm"
	tagArtistItem    = "hrpm"
)

// Object field type codes carried by hohm chunks. Only the codes the
// assembler consumes are named; everything else passes through untyped.
const (
	fieldTitle         = 0x02
	fieldAlbumTitle    = 0x03
	fieldArtist        = 0x04
	fieldLocalPath     = 0x0B
	fieldPlaylistTitle = 0x64
)

// rawFieldTypes are hohm type codes whose payload is not text: they carry
// binary blobs (smart criteria, artwork references and the like) and must
// not go through string decoding.
var rawFieldTypes = map[uint32]bool{
	0x42: true, 0x68: true, 0x69: true, 0x6A: true, 0x6B: true, 0x6C: true,
	0x192: true, 0x1F4: true, 0x1F7: true, 0x202: true, 0x320: true,
}

// Record is one decoded chunk. Exactly one of the concrete types below is
// yielded per chunk by the walker.
type Record interface {
	recordTag() string
}

// FileHeader is the hdfm record opening the stream.
type FileHeader struct {
	FileLength uint32
	Version    string
}

// StreamHeader is an hdsm data set boundary. Block types 4 and 22 carry a
// trailing sub-structure the walker skips over without modeling.
type StreamHeader struct {
	BlockType   uint32
	BlockLength uint32
}

// Marker is any of the pure structural chunks (list starts, holders). It
// carries no payload; Tag records which one was seen.
type Marker struct {
	Tag string
}

// ObjectField is a hohm record: one named value. Text holds the decoded
// string for text-typed fields; Raw holds the undecoded payload for the
// binary field types.
type ObjectField struct {
	RecordLength uint32
	Type         uint32
	Text         string
	Raw          []byte
}

// TrackEntry is an htim record marking the start of a new track's field
// group. The fields that follow arrive as ObjectField records.
type TrackEntry struct {
	RecordLength uint32
	SubBlocks    uint32
	SongID       uint32
	BlockType    uint32
}

// PlaylistItemCount is an hpim record marking the start of a new playlist's
// field group.
type PlaylistItemCount struct {
	ItemCount uint32
}

// PlaylistEntryKey is an hptm record referencing one track by song ID.
type PlaylistEntryKey struct {
	Key uint32
}

func (FileHeader) recordTag() string        { return tagFileHeader }
func (StreamHeader) recordTag() string      { return tagStreamHeader }
func (m Marker) recordTag() string          { return m.Tag }
func (ObjectField) recordTag() string       { return tagObjectField }
func (TrackEntry) recordTag() string        { return tagTrackItem }
func (PlaylistItemCount) recordTag() string { return tagPlaylistItem }
func (PlaylistEntryKey) recordTag() string  { return tagPlaylistEntry }

func reverseTag(tag string) string {
	b := []byte(tag)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
