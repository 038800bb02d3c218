// file: cmd/root_test.go
// version: 1.1.0
// guid: f0011223-96a7-b8c9-daeb-fc0d1e2f3a4b

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/itl-exporter/internal/config"
	"github.com/jdfalk/itl-exporter/internal/testutil"
)

// writeTestLibrary seals a one-track container into dir and returns its path.
func writeTestLibrary(t *testing.T, dir string) string {
	t.Helper()

	var records []byte
	records = append(records, testutil.TrackEntryChunk(7)...)
	records = append(records, testutil.TextFieldChunk(0x02, testutil.EncodeUTF16LE("Army of Me"))...)
	records = append(records, testutil.TextFieldChunk(0x04, testutil.EncodeUTF16LE("Björk"))...)

	header := testutil.ContainerHeader("12.0", 1<<20)
	path := filepath.Join(dir, "iTunes Library.itl")
	require.NoError(t, os.WriteFile(path, testutil.SealContainer(header, records), 0644))
	return path
}

func withAppConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	saved := config.AppConfig
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = saved })
}

func TestDecodeConfiguredLibrary(t *testing.T) {
	dir := t.TempDir()
	withAppConfig(t, config.Config{LibraryPath: writeTestLibrary(t, dir)})

	lib, err := decodeConfiguredLibrary()
	require.NoError(t, err)
	require.Len(t, lib.Tracks, 1)
	assert.Equal(t, "Army of Me", lib.Tracks[7].Title)
	assert.Equal(t, "Björk", lib.Tracks[7].Artist)
	assert.Equal(t, "12.0", lib.Version)
}

func TestDecodeConfiguredLibraryNoPath(t *testing.T) {
	withAppConfig(t, config.Config{})

	_, err := decodeConfiguredLibrary()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--library")
}

func TestDecodeConfiguredLibraryGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.itl")
	require.NoError(t, os.WriteFile(path, []byte("not a library"), 0644))
	withAppConfig(t, config.Config{LibraryPath: path})

	_, err := decodeConfiguredLibrary()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode error")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	withAppConfig(t, config.Config{LibraryPath: writeTestLibrary(t, dir)})

	assert.NoError(t, validateCmd.RunE(validateCmd, nil))
}

func TestExtractCommandWritesExports(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0755))
	withAppConfig(t, config.Config{
		LibraryPath: writeTestLibrary(t, dir),
		OutputDir:   out,
		Formats:     []string{"csv", "json"},
	})

	require.NoError(t, extractCmd.RunE(extractCmd, nil))
	assert.FileExists(t, filepath.Join(out, "playlists.csv"))
	assert.FileExists(t, filepath.Join(out, "library.json"))
}

func TestByteOrderName(t *testing.T) {
	assert.Equal(t, "big-endian", byteOrderName(false))
	assert.Contains(t, byteOrderName(true), "little-endian")
}
