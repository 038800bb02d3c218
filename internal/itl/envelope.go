// file: internal/itl/envelope.go
// version: 1.1.0
// guid: 1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809

package itl

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// headerLength is the fixed size of the container header. The header is
	// never encrypted or compressed.
	headerLength = 0x90

	// maxCryptOffset is where the header stores the big-endian length cap of
	// the encrypted region.
	maxCryptOffset = 0x5C
)

// itlAESKey is the fixed AES-128 key iTunes uses for the ECB-encrypted
// region of .itl libraries.
var itlAESKey = []byte("BHUILuilfghuila3")

// openEnvelope reverses the container envelope: it strips the fixed header,
// AES-ECB-decrypts the header-declared prefix of the payload, reattaches the
// unencrypted tail, and zlib-inflates the result. The returned buffer is the
// verbatim header followed by the plaintext record stream.
func openEnvelope(raw []byte) ([]byte, error) {
	if len(raw) < headerLength {
		return nil, fmt.Errorf("container header needs %d bytes, have %d: %w",
			headerLength, len(raw), ErrTruncatedInput)
	}
	header := raw[:headerLength]
	payload := raw[headerLength:]

	maxCrypt := int(binary.BigEndian.Uint32(header[maxCryptOffset : maxCryptOffset+4]))
	cryptLen := len(payload) &^ 0xF
	if cryptLen > maxCrypt {
		cryptLen = maxCrypt
	}
	if cryptLen%aes.BlockSize != 0 {
		return nil, fmt.Errorf("encrypted region is %d bytes: %w", cryptLen, ErrCryptoAlignment)
	}

	decrypted := decryptECB(payload[:cryptLen])

	reassembled := make([]byte, 0, len(payload))
	reassembled = append(reassembled, decrypted...)
	reassembled = append(reassembled, payload[cryptLen:]...)

	inflated, err := inflate(reassembled)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerLength+len(inflated))
	out = append(out, header...)
	out = append(out, inflated...)
	return out, nil
}

// decryptECB decrypts block-aligned input with the fixed key, one AES block
// at a time (ECB has no chaining).
func decryptECB(data []byte) []byte {
	block, err := aes.NewCipher(itlAESKey)
	if err != nil {
		// The key is a compile-time constant of valid length.
		panic(err)
	}
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += aes.BlockSize {
		block.Decrypt(out[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}
	return out
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening zlib stream: %w (%v)", ErrDecompression, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflating payload: %w (%v)", ErrDecompression, err)
	}
	return out, nil
}
