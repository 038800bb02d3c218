// file: internal/itl/textenc.go
// version: 1.0.1
// guid: 9d2e3f4a-5b6c-7d8e-9f0a-1b2c3d4e5f60

package itl

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// classifyAndDecode turns a hohm text payload into a string. The format
// carries no encoding tag, so the encoding is inferred from the payload
// shape: an even-length payload starting with a zero byte is single-byte
// Latin-1 text, an even-length payload ending with a zero byte is UTF-16LE,
// and anything else falls back to Latin-1.
//
// Decoders are created per call; x/text transformers carry state and must
// not be shared across concurrent decodes.
func classifyAndDecode(data []byte) (string, error) {
	if len(data) > 1 && len(data)%2 == 0 {
		if data[0] == 0 {
			return decodeLatin1(data)
		}
		if data[len(data)-1] == 0 {
			out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
			if err != nil {
				return "", fmt.Errorf("decoding UTF-16LE field: %w", err)
			}
			return string(out), nil
		}
	}
	return decodeLatin1(data)
}

func decodeLatin1(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding Latin-1 field: %w", err)
	}
	return string(out), nil
}
