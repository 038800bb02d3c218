// file: internal/config/config.go
// version: 1.1.0
// guid: 12233445-5667-7a8b-9c0d-1e2f30415263

package config

import (
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	LibraryPath string   // path to the .itl file
	OutputDir   string   // where exports are written
	Formats     []string // export formats: csv, m3u8, json, yaml, sqlite

	// Path rewriting for exported playlists: locations matching
	// SourcePrefix are rewritten to TargetPrefix and NFD-normalized when
	// NormalizePaths is set.
	SourcePrefix   string
	TargetPrefix   string
	NormalizePaths bool

	ServeAddr       string // listen address for the serve command
	WatchDebounceMS int    // debounce window for the watch command
}

var AppConfig Config

// InitConfig initializes the application configuration from viper.
func InitConfig() {
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("formats", []string{"csv", "m3u8"})
	viper.SetDefault("normalize_paths", true)
	viper.SetDefault("serve_addr", ":8080")
	viper.SetDefault("watch_debounce_ms", 500)

	AppConfig = Config{
		LibraryPath:     viper.GetString("library"),
		OutputDir:       viper.GetString("output_dir"),
		Formats:         viper.GetStringSlice("formats"),
		SourcePrefix:    viper.GetString("source_prefix"),
		TargetPrefix:    viper.GetString("target_prefix"),
		NormalizePaths:  viper.GetBool("normalize_paths"),
		ServeAddr:       viper.GetString("serve_addr"),
		WatchDebounceMS: viper.GetInt("watch_debounce_ms"),
	}
}
