// file: internal/export/csv.go
// version: 1.1.0
// guid: 45566778-8b9c-0d1e-2f30-415263748596

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/jdfalk/itl-exporter/internal/itl"
)

// WriteCSV writes one row per exportable playlist item: playlist title,
// track title, artist, album, rewritten path. Playlists are emitted in
// title order so output is deterministic.
func WriteCSV(w io.Writer, lib *itl.Library, rewriter *PathRewriter) error {
	cw := csv.NewWriter(w)

	titles := make([]string, 0, len(lib.Playlists))
	for title := range lib.Playlists {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		pl := lib.Playlists[title]
		for _, id := range pl.Items {
			track, ok := lib.Tracks[id]
			if !ok {
				continue
			}
			path, ok := rewriter.Rewrite(track.Path)
			if !ok {
				continue
			}
			artist := track.Artist
			if artist == "" {
				artist = "n/a"
			}
			if err := cw.Write([]string{title, track.Title, artist, track.Album, path}); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
