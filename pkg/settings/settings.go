// Package settings loads the on-disk configuration file and merges it with
// command-line overrides into the validated config the export pipeline
// consumes. The pipeline itself never touches configuration I/O.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"codeprompt/pkg/export"
)

// DefaultFileName is the settings file looked up in the working directory.
const DefaultFileName = "code-prompt-builder.yaml"

// File mirrors the on-disk settings document.
type File struct {
	Extensions     []string `yaml:"extensions"`
	ExcludeFiles   []string `yaml:"exclude_files"`
	ExcludeDirs    []string `yaml:"exclude_dirs"`
	FocusDirs      []string `yaml:"focus_dirs"`
	ChunkSize      int      `yaml:"chunk_size"`
	IncludeSummary *bool    `yaml:"include_summary"`
}

// Defaults returns the settings written when no file exists yet.
func Defaults() File {
	yes := true
	return File{
		Extensions: []string{".html", ".css", ".js", ".py", ".md", ".json"},
		ExcludeDirs: []string{
			".git", ".venv", "venv", "node_modules", "__pycache__",
			".idea", ".vscode", "dist", "build", "env", ".pytest_cache",
		},
		IncludeSummary: &yes,
	}
}

// Load reads the settings file at path, creating it with defaults when it
// does not exist. Unreadable or unparsable files fall back to defaults; a
// settings problem never stops a run.
func Load(path string, logger *zap.Logger) File {
	defaults := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := yaml.Marshal(defaults)
		if err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
		if err != nil {
			logger.Warn("Failed to create settings file, using defaults", zap.String("path", path), zap.Error(err))
		} else {
			logger.Info("Created default settings file", zap.String("path", path))
		}
		return defaults
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read settings file, using defaults", zap.String("path", path), zap.Error(err))
		return defaults
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		logger.Warn("Failed to parse settings file, using defaults", zap.String("path", path), zap.Error(err))
		return defaults
	}

	// Absent keys inherit their defaults; present keys stand as written.
	if f.Extensions == nil {
		f.Extensions = defaults.Extensions
	}
	if f.ExcludeDirs == nil {
		f.ExcludeDirs = defaults.ExcludeDirs
	}
	if f.IncludeSummary == nil {
		f.IncludeSummary = defaults.IncludeSummary
	}
	return f
}

// Overrides carries command-line values layered over the settings file.
type Overrides struct {
	Extensions        []string
	ExcludeFiles      []string
	ExcludeDirs       []string
	FocusDirs         []string
	ChunkSize         int
	ChunkSizeSet      bool
	NoSummary         bool
	NoDefaultExcludes bool
	RespectGitignore  bool
	TokenModel        string
}

// Merge applies the override policy and returns the validated pipeline
// config. Extensions given on the command line replace the configured set
// outright; exclusion and focus lists union with it, except that
// NoDefaultExcludes drops the file's exclusion entries entirely.
func Merge(f File, ov Overrides) (export.Config, error) {
	extensions := f.Extensions
	if len(ov.Extensions) > 0 {
		extensions = ov.Extensions
	}
	extensions, err := normalizeExtensions(extensions)
	if err != nil {
		return export.Config{}, err
	}

	baseExcludeFiles := f.ExcludeFiles
	baseExcludeDirs := f.ExcludeDirs
	if ov.NoDefaultExcludes {
		baseExcludeFiles = nil
		baseExcludeDirs = nil
	}

	cfg := export.Config{
		Extensions:       extensions,
		ExcludeFiles:     union(baseExcludeFiles, ov.ExcludeFiles, normalizeRelPath),
		ExcludeDirs:      union(baseExcludeDirs, ov.ExcludeDirs, nil),
		FocusDirs:        union(f.FocusDirs, ov.FocusDirs, normalizeRelPath),
		ChunkSize:        f.ChunkSize,
		IncludeSummary:   f.IncludeSummary == nil || *f.IncludeSummary,
		RespectGitignore: ov.RespectGitignore,
		TokenModel:       ov.TokenModel,
	}
	if ov.ChunkSizeSet {
		cfg.ChunkSize = ov.ChunkSize
	}
	if ov.NoSummary {
		cfg.IncludeSummary = false
	}
	if err := cfg.Validate(); err != nil {
		return export.Config{}, err
	}
	return cfg, nil
}

// normalizeExtensions lowercases each extension and supplies the leading dot
// when missing, rejecting empty entries at the boundary so the walk never
// has to handle malformed filters.
func normalizeExtensions(extensions []string) ([]string, error) {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		e := strings.ToLower(strings.TrimSpace(ext))
		if e == "" || e == "." {
			return nil, fmt.Errorf("settings: malformed extension %q", ext)
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out, nil
}

// normalizeRelPath strips a leading "./" and cleans the path so exclusion
// entries compare against the selector's slash-normalized relative paths.
func normalizeRelPath(p string) string {
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, ".\\")
	return filepath.ToSlash(filepath.Clean(p))
}

// union merges two string lists into a deduplicated, sorted slice, applying
// norm to every entry when given. Sorting keeps runs with identical inputs
// byte-identical.
func union(base, extra []string, norm func(string) string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	for _, s := range append(append([]string{}, base...), extra...) {
		if norm != nil {
			s = norm(s)
		}
		if s != "" {
			seen[s] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
