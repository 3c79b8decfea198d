package export

import (
	"fmt"
	"strings"
)

// Delimiter separates the segments of an export document. It is the only
// boundary the chunk splitter is allowed to cut at.
const Delimiter = "\n###\n"

// charsPerToken is the character budget behind one estimated token.
const charsPerToken = 4

// DefaultOverlapTokens is the chunk overlap used when the caller does not set one.
const DefaultOverlapTokens = 200

// Config is the validated selection and assembly configuration for one run.
// Callers are expected to build it through the settings package, which applies
// defaults and the merge policy; the pipeline itself performs no config I/O.
type Config struct {
	Extensions       []string // lowercase suffixes, each starting with "."
	ExcludeFiles     []string // slash-normalized paths relative to the target dir
	ExcludeDirs      []string // bare directory names, pruned before descent
	FocusDirs        []string // relative directory paths; empty means no restriction
	ChunkSize        int      // max tokens per output chunk; 0 disables chunking
	OverlapTokens    int      // chunk overlap in tokens; 0 means DefaultOverlapTokens
	IncludeSummary   bool
	RespectGitignore bool   // honor a .gitignore at the target dir root
	TokenModel       string // tiktoken model for token counts; "" uses the 4-chars heuristic
}

// Validate checks the parts of the configuration that the pipeline relies on.
// Extension entries are validated here, once, rather than ad hoc inside the
// directory walk.
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return fmt.Errorf("config: extensions list is empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("config: malformed extension %q (must start with '.')", ext)
		}
		if ext != strings.ToLower(ext) {
			return fmt.Errorf("config: extension %q must be lowercase", ext)
		}
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("config: chunk size must not be negative, got %d", c.ChunkSize)
	}
	return nil
}

// ErrorEntry records one recovered per-file or per-directory failure. Entries
// are append-only and surfaced both inside the emitted document and in the
// Result handed back to the caller.
type ErrorEntry struct {
	Path   string
	Reason string
}

func (e ErrorEntry) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Result is the outcome contract exposed to the CLI layer.
type Result struct {
	Success     bool
	FileCount   int
	TotalLines  int
	TotalSize   int64
	TotalTokens int
	BinarySkips int
	Errors      []ErrorEntry
	OutputFiles []string
	Document    string // full assembled document, before chunking
}
