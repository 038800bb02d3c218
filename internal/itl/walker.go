// file: internal/itl/walker.go
// version: 1.3.0
// guid: 2b3c4d5e-6f70-8192-a3b4-c5d6e7f80912

package itl

import (
	"fmt"
	"io"
)

// chunkHeaderSize is the tag plus length prefix every chunk carries. Length
// fields in the stream include these 8 bytes.
const chunkHeaderSize = 8

// decodeFunc decodes one chunk body into a Record. The body cursor is
// scoped to exactly the chunk's declared body; decoders that consume bytes
// beyond the declared chunk (hdsm realign, hohm trailing value) do so
// through the walker's outer cursor.
type decodeFunc func(w *walker, body *cursor) (Record, error)

// decoders maps canonical (big-endian) tags to their decode routines.
// Reversed-orientation lookups go through the same table after tag
// reversal, so each tag is registered once.
var decoders = map[string]decodeFunc{
	tagFileHeader:    decodeFileHeader,
	tagStreamHeader:  decodeStreamHeader,
	tagObjectField:   decodeObjectField,
	tagTrackItem:     decodeTrackEntry,
	tagPlaylistItem:  decodePlaylistItemCount,
	tagPlaylistEntry: decodePlaylistEntryKey,
	tagGlobalHolder:  decodeMarker,
	tagAlbumList:     decodeMarker,
	tagAlbumItem:     decodeMarker,
	tagArtworkList:   decodeMarker,
	tagArtworkItem:   decodeMarker,
	tagTrackList:     decodeMarker,
	tagQueryList:     decodeMarker,
	tagQueryItem:     decodeMarker,
	tagStringStore:   decodeMarker,
	tagPlaylistList:  decodeMarker,
	tagSortList:      decodeMarker,
	tagPlaylistSet:   decodeMarker,
	tagArtistList:    decodeMarker,
	tagArtistItem:    decodeMarker,
}

// walker iterates a plaintext record stream as a lazy, finite,
// non-restartable sequence of Records. The flipped flag is discovered from
// the first tag whose reversed form matches a known decoder and is sticky
// for the remainder of the stream.
type walker struct {
	cur     *cursor
	flipped bool
	// currentTag is the canonical tag of the chunk being decoded, for the
	// Marker decoder and error context.
	currentTag string
}

func newWalker(stream []byte) *walker {
	return &walker{cur: newCursor(stream)}
}

// next decodes and returns the next record. It returns io.EOF when the
// stream is cleanly exhausted.
func (w *walker) next() (Record, error) {
	if w.cur.remaining() == 0 {
		return nil, io.EOF
	}

	tag, err := w.cur.readASCII(4)
	if err != nil {
		return nil, fmt.Errorf("reading chunk tag: %w", err)
	}

	canonical := tag
	if w.flipped {
		canonical = reverseTag(tag)
	}
	dec, ok := decoders[canonical]
	if !ok {
		// First-tag orientation probe: a known tag read byte-reversed flips
		// the stream into little-endian mode for good.
		rev := reverseTag(canonical)
		if dec, ok = decoders[rev]; ok {
			w.flipped = true
			w.cur.little = true
			canonical = rev
		} else {
			return nil, fmt.Errorf("tag %q: %w", tag, ErrUnknownChunkTag)
		}
	}
	w.currentTag = canonical

	length, err := w.cur.readUint32()
	if err != nil {
		return nil, fmt.Errorf("reading %s chunk length: %w", canonical, err)
	}
	if length < chunkHeaderSize {
		return nil, fmt.Errorf("%s chunk declares length %d: %w", canonical, length, ErrMalformedChunkLength)
	}

	body, err := w.cur.readBytes(int(length) - chunkHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("reading %s chunk body: %w", canonical, err)
	}
	bodyCur := newCursor(body)
	bodyCur.little = w.cur.little

	rec, err := dec(w, bodyCur)
	if err != nil {
		return nil, fmt.Errorf("decoding %s chunk: %w", canonical, err)
	}
	return rec, nil
}

// ---------------------------------------------------------------------------
// Per-tag decoders
// ---------------------------------------------------------------------------

func decodeFileHeader(_ *walker, body *cursor) (Record, error) {
	fileLength, err := body.readUint32()
	if err != nil {
		return nil, err
	}
	if err := body.skip(4); err != nil {
		return nil, err
	}
	verLen, err := body.readByte()
	if err != nil {
		return nil, err
	}
	version, err := body.readASCII(int(verLen))
	if err != nil {
		return nil, err
	}
	return FileHeader{FileLength: fileLength, Version: version}, nil
}

func decodeStreamHeader(w *walker, body *cursor) (Record, error) {
	recordLength, err := body.readUint32()
	if err != nil {
		return nil, err
	}
	blockType, err := body.readUint32()
	if err != nil {
		return nil, err
	}

	// Block types 4 and 22 carry a variable-length trailing sub-structure
	// beyond the declared chunk. The record length covers it; skip the
	// difference on the outer stream to stay chunk-aligned.
	if blockType == 4 || blockType == 22 {
		extra := int(recordLength) - len(body.data) - chunkHeaderSize
		if extra < 0 {
			return nil, fmt.Errorf("hdsm record length %d shorter than chunk: %w",
				recordLength, ErrMalformedChunkLength)
		}
		if err := w.cur.skip(extra); err != nil {
			return nil, err
		}
	}

	return StreamHeader{BlockType: blockType, BlockLength: recordLength}, nil
}

func decodeObjectField(w *walker, body *cursor) (Record, error) {
	recordLength, err := body.readUint32()
	if err != nil {
		return nil, err
	}
	fieldType, err := body.readUint32()
	if err != nil {
		return nil, err
	}

	// The value lives between the end of this chunk and the record length,
	// which re-declares the full record size. Read it from the outer stream.
	valueLen := int(recordLength) - len(body.data) - chunkHeaderSize
	if valueLen < 0 {
		return nil, fmt.Errorf("hohm record length %d shorter than chunk: %w",
			recordLength, ErrMalformedChunkLength)
	}
	value, err := w.cur.readBytes(valueLen)
	if err != nil {
		return nil, err
	}

	field := ObjectField{RecordLength: recordLength, Type: fieldType}
	if rawFieldTypes[fieldType] {
		field.Raw = value
		return field, nil
	}

	// Text fields carry a fixed 16-byte sub-header before the string bytes.
	if len(value) > 16 {
		value = value[16:]
	} else {
		value = nil
	}
	text, err := classifyAndDecode(value)
	if err != nil {
		return nil, err
	}
	field.Text = text
	return field, nil
}

func decodeTrackEntry(_ *walker, body *cursor) (Record, error) {
	var fields [4]uint32
	for i := range fields {
		v, err := body.readUint32()
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}
	return TrackEntry{
		RecordLength: fields[0],
		SubBlocks:    fields[1],
		SongID:       fields[2],
		BlockType:    fields[3],
	}, nil
}

func decodePlaylistItemCount(_ *walker, body *cursor) (Record, error) {
	if err := body.skip(8); err != nil {
		return nil, err
	}
	count, err := body.readUint32()
	if err != nil {
		return nil, err
	}
	return PlaylistItemCount{ItemCount: count}, nil
}

func decodePlaylistEntryKey(_ *walker, body *cursor) (Record, error) {
	if err := body.skip(16); err != nil {
		return nil, err
	}
	key, err := body.readUint32()
	if err != nil {
		return nil, err
	}
	return PlaylistEntryKey{Key: key}, nil
}

func decodeMarker(w *walker, _ *cursor) (Record, error) {
	return Marker{Tag: w.currentTag}, nil
}
