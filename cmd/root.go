// file: cmd/root.go
// version: 1.2.0
// guid: deeff001-7485-96a7-b8c9-daebfc0d1e2f

package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdfalk/itl-exporter/internal/config"
	"github.com/jdfalk/itl-exporter/internal/export"
	"github.com/jdfalk/itl-exporter/internal/itl"
	"github.com/jdfalk/itl-exporter/internal/metrics"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itl-exporter",
	Short: "Decode binary iTunes .itl libraries and export their playlists",
	Long: `itl-exporter decodes the encrypted binary iTunes library format (.itl)
and recovers track metadata and playlist membership without iTunes.

Decoded libraries can be exported as CSV, M3U8 playlist files, JSON, YAML
or a SQLite database, with track locations rewritten for a target device.`,
}

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Decode a library and write the configured exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := decodeConfiguredLibrary()
		if err != nil {
			return err
		}

		formats, err := export.Run(lib, export.Options{
			OutputDir: config.AppConfig.OutputDir,
			Formats:   config.AppConfig.Formats,
			Rewriter:  rewriterFromConfig(),
			Progress:  true,
		})
		for _, f := range formats {
			metrics.ExportCompleted(f)
		}
		if err != nil {
			return fmt.Errorf("export error: %w", err)
		}

		fmt.Printf("Decoded %d tracks and %d playlists\n", len(lib.Tracks), len(lib.Playlists))
		fmt.Printf("Wrote %v to %s\n", formats, config.AppConfig.OutputDir)
		return nil
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a file is a decodable .itl library",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readConfiguredLibrary()
		if err != nil {
			return err
		}
		if err := itl.Validate(raw); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Printf("%s is a valid .itl library\n", config.AppConfig.LibraryPath)
		return nil
	},
}

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print summary information about a library",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := decodeConfiguredLibrary()
		if err != nil {
			return err
		}

		fmt.Printf("Library:      %s\n", config.AppConfig.LibraryPath)
		fmt.Printf("Version:      %s\n", lib.Version)
		fmt.Printf("Byte order:   %s\n", byteOrderName(lib.LittleEndian))
		fmt.Printf("Tracks:       %d\n", len(lib.Tracks))
		fmt.Printf("Playlists:    %d\n", len(lib.Playlists))

		tags := make([]string, 0, len(lib.ChunkCounts))
		for tag := range lib.ChunkCounts {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		fmt.Println("Chunks:")
		for _, tag := range tags {
			fmt.Printf("  %s  %d\n", tag, lib.ChunkCounts[tag])
		}
		return nil
	},
}

func byteOrderName(little bool) string {
	if little {
		return "little-endian (reversed tags)"
	}
	return "big-endian"
}

// readConfiguredLibrary reads the configured .itl file.
func readConfiguredLibrary() ([]byte, error) {
	if config.AppConfig.LibraryPath == "" {
		return nil, fmt.Errorf("library path not specified (use --library)")
	}
	raw, err := os.ReadFile(config.AppConfig.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("reading library: %w", err)
	}
	return raw, nil
}

// decodeConfiguredLibrary reads and decodes the configured .itl file,
// recording decode metrics.
func decodeConfiguredLibrary() (*itl.Library, error) {
	raw, err := readConfiguredLibrary()
	if err != nil {
		return nil, err
	}

	metrics.Register()
	metrics.DecodeStarted()
	start := time.Now()

	lib, err := itl.DecodeLibrary(raw)
	if err != nil {
		metrics.DecodeFailed()
		return nil, fmt.Errorf("decode error: %w", err)
	}

	metrics.DecodeCompleted(time.Since(start))
	metrics.RecordsDecoded(lib.ChunkCounts)
	metrics.LibraryDecoded(len(lib.Tracks), len(lib.Playlists))
	return lib, nil
}

func rewriterFromConfig() *export.PathRewriter {
	return &export.PathRewriter{
		SourcePrefix: config.AppConfig.SourcePrefix,
		TargetPrefix: config.AppConfig.TargetPrefix,
		Normalize:    config.AppConfig.NormalizePaths,
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.itl-exporter.yaml)")
	rootCmd.PersistentFlags().String("library", "", "path to the .itl library file")
	rootCmd.PersistentFlags().String("output", ".", "directory for exported files")
	rootCmd.PersistentFlags().StringSlice("formats", []string{"csv", "m3u8"}, "export formats: csv, m3u8, json, yaml, sqlite")
	rootCmd.PersistentFlags().String("source-prefix", "", "location prefix tracks must have to be exported")
	rootCmd.PersistentFlags().String("target-prefix", "", "replacement for the source prefix in exported paths")
	rootCmd.PersistentFlags().Bool("normalize-paths", true, "NFD-normalize exported paths")

	_ = viper.BindPFlag("library", rootCmd.PersistentFlags().Lookup("library"))
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("formats", rootCmd.PersistentFlags().Lookup("formats"))
	_ = viper.BindPFlag("source_prefix", rootCmd.PersistentFlags().Lookup("source-prefix"))
	_ = viper.BindPFlag("target_prefix", rootCmd.PersistentFlags().Lookup("target-prefix"))
	_ = viper.BindPFlag("normalize_paths", rootCmd.PersistentFlags().Lookup("normalize-paths"))

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(infoCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".itl-exporter")
		}
	}

	viper.SetEnvPrefix("ITL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
