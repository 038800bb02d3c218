// file: internal/itl/validate.go
// version: 1.0.0
// guid: 6f708192-a3b4-c5d6-e7f8-091223344556

// Package itl decodes the binary iTunes .itl library container: it strips
// the AES-ECB/zlib envelope and walks the tagged record stream into track
// and playlist tables.
package itl

import "fmt"

// Validate opens the envelope and checks that the stream parses through its
// file header and the first record after it, without decoding the full
// library. The second chunk is where byte-order detection happens on
// reversed streams, so probing it catches garbage payloads early.
func Validate(raw []byte) error {
	stream, err := openEnvelope(raw)
	if err != nil {
		return err
	}
	w := newWalker(stream)
	if _, err := w.next(); err != nil {
		return fmt.Errorf("file header chunk: %w", err)
	}
	if w.cur.remaining() == 0 {
		return nil
	}
	if _, err := w.next(); err != nil {
		return fmt.Errorf("first record: %w", err)
	}
	return nil
}
