// file: internal/itl/errors.go
// version: 1.0.0
// guid: 3f8a1c2d-9b4e-4f60-a1b2-c3d4e5f6a7b8

package itl

import "errors"

// Decode errors. Every failure is terminal: a corrupt chunk desyncs tag
// alignment for the rest of the stream, so there is no partial recovery.
var (
	// ErrTruncatedInput is returned when the container header is shorter than
	// its fixed size or a read/skip runs past the end of the buffer.
	ErrTruncatedInput = errors.New("unexpected end of input")

	// ErrCryptoAlignment is returned when the encrypted region length is not
	// a multiple of the AES block size.
	ErrCryptoAlignment = errors.New("encrypted region not block-aligned")

	// ErrDecompression is returned when zlib inflation of the payload fails.
	ErrDecompression = errors.New("payload decompression failed")

	// ErrUnknownChunkTag is returned when a 4-byte tag matches no known
	// chunk decoder in either byte order.
	ErrUnknownChunkTag = errors.New("unrecognized chunk tag")

	// ErrMalformedChunkLength is returned when a declared chunk or record
	// length is smaller than the fixed header it must cover.
	ErrMalformedChunkLength = errors.New("malformed chunk length")
)
