// file: cmd/serve.go
// version: 1.1.0
// guid: eff00112-8596-a7b8-c9da-ebfc0d1e2f3a

package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdfalk/itl-exporter/internal/config"
	"github.com/jdfalk/itl-exporter/internal/export"
	"github.com/jdfalk/itl-exporter/internal/server"
	"github.com/jdfalk/itl-exporter/internal/watcher"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Decode a library and serve it over HTTP",
	Long: `Decode the configured library and expose it as a read-only JSON API
with fuzzy search and Prometheus metrics. The library file is watched
for changes and re-decoded automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := decodeConfiguredLibrary()
		if err != nil {
			return err
		}

		srv := server.New(lib)

		debounce := time.Duration(config.AppConfig.WatchDebounceMS) * time.Millisecond
		w := watcher.New(func(path string) {
			fresh, err := decodeConfiguredLibrary()
			if err != nil {
				log.Printf("[ERROR] re-decode after change failed: %v", err)
				return
			}
			srv.SetLibrary(fresh)
			log.Printf("[INFO] reloaded library: %d tracks, %d playlists", len(fresh.Tracks), len(fresh.Playlists))
		}, debounce)
		if err := w.Start(config.AppConfig.LibraryPath); err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer w.Stop()

		fmt.Printf("Serving %s on %s\n", config.AppConfig.LibraryPath, config.AppConfig.ServeAddr)
		return srv.Run(config.AppConfig.ServeAddr)
	},
}

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the configured exports whenever the library changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		runExports := func(path string) {
			lib, err := decodeConfiguredLibrary()
			if err != nil {
				log.Printf("[ERROR] decode failed: %v", err)
				return
			}
			formats, err := export.Run(lib, export.Options{
				OutputDir: config.AppConfig.OutputDir,
				Formats:   config.AppConfig.Formats,
				Rewriter:  rewriterFromConfig(),
			})
			if err != nil {
				log.Printf("[ERROR] export failed: %v", err)
				return
			}
			log.Printf("[INFO] exported %v for %d tracks", formats, len(lib.Tracks))
		}

		// Export once up front so a fresh checkout is immediately populated.
		runExports(config.AppConfig.LibraryPath)

		debounce := time.Duration(config.AppConfig.WatchDebounceMS) * time.Millisecond
		w := watcher.New(runExports, debounce)
		if err := w.Start(config.AppConfig.LibraryPath); err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer w.Stop()

		fmt.Printf("Watching %s (Ctrl-C to stop)\n", config.AppConfig.LibraryPath)
		select {}
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "address to serve the HTTP API on")
	_ = viper.BindPFlag("serve_addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
}
