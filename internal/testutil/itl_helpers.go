// file: internal/testutil/itl_helpers.go
// version: 1.1.0
// guid: 8192a3b4-c5d6-e7f8-0912-23344556677a

// Package testutil builds synthetic .itl containers and record streams for
// tests. Builders emit big-endian chunks by default; the LE variants emit
// byte-reversed tags with little-endian integers.
package testutil

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"encoding/binary"
)

// itlAESKey mirrors the fixed container key.
var itlAESKey = []byte("BHUILuilfghuila3")

// HeaderLength is the fixed container header size.
const HeaderLength = 0x90

// Chunk assembles tag + length + body with a big-endian length covering the
// 8-byte chunk header.
func Chunk(tag string, body []byte) []byte {
	buf := make([]byte, 0, 8+len(body))
	buf = append(buf, tag...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(body)+8))
	return append(buf, body...)
}

// ChunkLE assembles a byte-reversed tag with a little-endian length, the
// on-disk form of chunks in reversed-order libraries.
func ChunkLE(tag string, body []byte) []byte {
	rev := []byte(tag)
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	buf := make([]byte, 0, 8+len(body))
	buf = append(buf, rev...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(body)+8))
	return append(buf, body...)
}

// U32 and U32LE append helpers for building chunk bodies.
func U32(vals ...uint32) []byte {
	var buf []byte
	for _, v := range vals {
		buf = binary.BigEndian.AppendUint32(buf, v)
	}
	return buf
}

func U32LE(vals ...uint32) []byte {
	var buf []byte
	for _, v := range vals {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}

// TrackEntryChunk builds an htim chunk for the given song ID. The inner
// record length restates the full chunk length, as the format does.
func TrackEntryChunk(songID uint32) []byte {
	return Chunk("htim", U32(24, 0, songID, 1))
}

// TrackEntryChunkLE is the reversed-order form of TrackEntryChunk.
func TrackEntryChunkLE(songID uint32) []byte {
	return ChunkLE("htim", U32LE(24, 0, songID, 1))
}

// PlaylistCountChunk builds an hpim chunk declaring n items.
func PlaylistCountChunk(n uint32) []byte {
	return Chunk("hpim", append(U32(0, 0), U32(n)...))
}

// PlaylistKeyChunk builds an hptm chunk referencing a song ID.
func PlaylistKeyChunk(songID uint32) []byte {
	body := make([]byte, 16)
	return Chunk("hptm", append(body, U32(songID)...))
}

// ObjectFieldChunk builds a hohm chunk plus its trailing value bytes. The
// hohm chunk proper covers only the record length and type; the value sits
// between the chunk end and the restated record length.
func ObjectFieldChunk(fieldType uint32, value []byte) []byte {
	recordLength := uint32(16 + len(value))
	chunk := Chunk("hohm", U32(recordLength, fieldType))
	return append(chunk, value...)
}

// TextFieldChunk builds a hohm text field: 16 bytes of sub-header followed
// by the encoded string bytes.
func TextFieldChunk(fieldType uint32, encoded []byte) []byte {
	value := append(make([]byte, 16), encoded...)
	return ObjectFieldChunk(fieldType, value)
}

// EncodeUTF16LE encodes s as UTF-16LE without a BOM.
func EncodeUTF16LE(s string) []byte {
	var buf []byte
	for _, r := range s {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(r))
	}
	return buf
}

// MarkerChunk builds an empty-bodied structural chunk for the given tag.
func MarkerChunk(tag string) []byte {
	return Chunk(tag, nil)
}

// ContainerHeader builds the fixed 0x90-byte header, which doubles as the
// stream's hdfm chunk. maxCrypt lands at the header's crypt-length offset.
func ContainerHeader(version string, maxCrypt uint32) []byte {
	buf := make([]byte, HeaderLength)
	copy(buf[0:4], "hdfm")
	binary.BigEndian.PutUint32(buf[4:8], HeaderLength)
	binary.BigEndian.PutUint32(buf[8:12], 0) // file length, unused by tests
	buf[16] = byte(len(version))
	copy(buf[17:], version)
	binary.BigEndian.PutUint32(buf[0x5C:0x60], maxCrypt)
	return buf
}

// SealContainer wraps a record stream (everything after the header) into a
// full container: deflate, encrypt the clamped prefix, prepend the header.
func SealContainer(header, records []byte) []byte {
	payload := Deflate(records)

	maxCrypt := int(binary.BigEndian.Uint32(header[0x5C:0x60]))
	cryptLen := len(payload) &^ 0xF
	if cryptLen > maxCrypt {
		cryptLen = maxCrypt
	}

	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	out = append(out, encryptECB(payload[:cryptLen])...)
	return append(out, payload[cryptLen:]...)
}

func encryptECB(data []byte) []byte {
	block, err := aes.NewCipher(itlAESKey)
	if err != nil {
		panic(err)
	}
	out := make([]byte, len(data))
	for i := 0; i+aes.BlockSize <= len(data); i += aes.BlockSize {
		block.Encrypt(out[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}
	return out
}

// Deflate zlib-compresses data, the inverse of the decoder's inflate step.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}
