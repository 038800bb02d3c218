// file: internal/export/m3u8.go
// version: 1.1.0
// guid: 56677889-9c0d-1e2f-3041-5263748596a7

package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/jdfalk/itl-exporter/internal/itl"
)

// utf8BOM prefixes each playlist file so players pick up UTF-8 paths.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WritePlaylists writes one .m3u8 file per titled playlist into dir and
// returns the number of files written. Items whose track is unknown or
// whose location does not match the rewriter's source prefix are skipped.
func WritePlaylists(dir string, lib *itl.Library, rewriter *PathRewriter, showProgress bool) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating playlist dir: %w", err)
	}

	titles := make([]string, 0, len(lib.Playlists))
	for title := range lib.Playlists {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(titles)), "writing playlists")
	}

	written := 0
	for _, title := range titles {
		if bar != nil {
			_ = bar.Add(1)
		}
		if title == "" {
			log.Printf("[WARN] skipping untitled playlist with %d items", len(lib.Playlists[title].Items))
			continue
		}
		path := filepath.Join(dir, safeFileName(title)+".m3u8")
		if err := writePlaylistFile(path, lib, lib.Playlists[title], rewriter); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writePlaylistFile(path string, lib *itl.Library, pl itl.Playlist, rewriter *PathRewriter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating playlist file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing playlist BOM: %w", err)
	}

	for _, id := range pl.Items {
		track, ok := lib.Tracks[id]
		if !ok {
			continue
		}
		p, ok := rewriter.Rewrite(track.Path)
		if !ok {
			continue
		}
		if _, err := f.WriteString(p + "\n"); err != nil {
			return fmt.Errorf("writing playlist entry: %w", err)
		}
	}
	return nil
}

// safeFileName sanitizes a playlist title for use as a filename.
func safeFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, ":", "-")
	return name
}
