package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	f := Load(path, zap.NewNop())

	assert.Equal(t, Defaults().Extensions, f.Extensions)
	assert.Contains(t, f.ExcludeDirs, "node_modules")
	require.NotNil(t, f.IncludeSummary)
	assert.True(t, *f.IncludeSummary)

	_, err := os.Stat(path)
	assert.NoError(t, err, "default settings file should have been written")
}

func TestLoadReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("extensions: [\".go\"]\nchunk_size: 2000\n"), 0o644))

	f := Load(path, zap.NewNop())

	assert.Equal(t, []string{".go"}, f.Extensions)
	assert.Equal(t, 2000, f.ChunkSize)
	// Absent keys fall back to defaults.
	assert.Contains(t, f.ExcludeDirs, ".git")
	require.NotNil(t, f.IncludeSummary)
	assert.True(t, *f.IncludeSummary)
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("extensions: [unclosed\n"), 0o644))

	f := Load(path, zap.NewNop())
	assert.Equal(t, Defaults().Extensions, f.Extensions)
}

func TestMergeExtensionsReplaceDefaults(t *testing.T) {
	cfg, err := Merge(Defaults(), Overrides{Extensions: []string{".GO", "rs"}})
	require.NoError(t, err)

	// Explicit extensions replace the configured set outright, normalized to
	// lowercase dotted form.
	assert.Equal(t, []string{".go", ".rs"}, cfg.Extensions)
}

func TestMergeExcludesUnionWithDefaults(t *testing.T) {
	cfg, err := Merge(Defaults(), Overrides{
		ExcludeFiles: []string{"./secret.js"},
		ExcludeDirs:  []string{"tmp"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"secret.js"}, cfg.ExcludeFiles)
	assert.Contains(t, cfg.ExcludeDirs, "tmp")
	assert.Contains(t, cfg.ExcludeDirs, "node_modules")
}

func TestMergeNoDefaultExcludesDropsDefaults(t *testing.T) {
	cfg, err := Merge(Defaults(), Overrides{
		ExcludeDirs:       []string{"tmp"},
		NoDefaultExcludes: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"tmp"}, cfg.ExcludeDirs)
	assert.Empty(t, cfg.ExcludeFiles)
}

func TestMergeChunkAndSummaryFlags(t *testing.T) {
	f := Defaults()
	f.ChunkSize = 4000

	cfg, err := Merge(f, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.ChunkSize)
	assert.True(t, cfg.IncludeSummary)

	cfg, err = Merge(f, Overrides{ChunkSize: 1000, ChunkSizeSet: true, NoSummary: true})
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.False(t, cfg.IncludeSummary)
}

func TestMergeFocusDirsUnion(t *testing.T) {
	f := Defaults()
	f.FocusDirs = []string{"src"}

	cfg, err := Merge(f, Overrides{FocusDirs: []string{"./docs", "src"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "src"}, cfg.FocusDirs)
}

func TestMergeMalformedExtension(t *testing.T) {
	_, err := Merge(Defaults(), Overrides{Extensions: []string{""}})
	assert.Error(t, err)

	_, err = Merge(Defaults(), Overrides{Extensions: []string{"."}})
	assert.Error(t, err)
}
