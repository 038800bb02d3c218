// file: internal/export/run.go
// version: 1.0.0
// guid: 899aabbc-2f30-4152-6374-8596a7b8c9da

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdfalk/itl-exporter/internal/itl"
)

// Options selects what an export run writes and how paths are rewritten.
type Options struct {
	OutputDir string
	Formats   []string
	Rewriter  *PathRewriter
	Progress  bool
}

// Run writes the library in each requested format and returns the formats
// that were written. Output names are fixed: playlists.csv, playlists/,
// library.json, library.yaml, library.db.
func Run(lib *itl.Library, opts Options) ([]string, error) {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var done []string
	for _, format := range opts.Formats {
		var err error
		switch format {
		case "csv":
			err = runToFile(filepath.Join(opts.OutputDir, "playlists.csv"), func(f *os.File) error {
				return WriteCSV(f, lib, opts.Rewriter)
			})
		case "m3u8":
			_, err = WritePlaylists(filepath.Join(opts.OutputDir, "playlists"), lib, opts.Rewriter, opts.Progress)
		case "json":
			err = runToFile(filepath.Join(opts.OutputDir, "library.json"), func(f *os.File) error {
				return WriteJSON(f, lib)
			})
		case "yaml":
			err = runToFile(filepath.Join(opts.OutputDir, "library.yaml"), func(f *os.File) error {
				return WriteYAML(f, lib)
			})
		case "sqlite":
			err = WriteSQLite(filepath.Join(opts.OutputDir, "library.db"), lib, opts.Rewriter)
		default:
			return done, fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return done, fmt.Errorf("exporting %s: %w", format, err)
		}
		done = append(done, format)
	}
	return done, nil
}

func runToFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}
