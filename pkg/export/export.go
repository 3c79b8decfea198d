// Package export implements the code prompt pipeline: it selects text files
// under a target directory, collects per-file stats, and assembles their
// contents into a single delimited export document, optionally split into
// size-bounded chunks.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// outputTimestampLayout names output files; the title line inside the
// document uses statModTimeLayout instead.
const outputTimestampLayout = "2006-01-02_1504"

// Run executes the full pipeline against targetDir and writes the resulting
// document(s) into outputDir, creating it if needed. When singleFile is
// non-empty only that one path (resolved against targetDir) is exported.
// Per-file failures accumulate in the result; only the inability to create
// the output directory or write an output file is fatal.
func Run(targetDir, outputDir string, cfg Config, singleFile string, logger *zap.Logger) (Result, error) {
	start := time.Now()
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve target directory %s: %w", targetDir, err)
	}
	logger.Info("Starting export", zap.String("targetDir", absTarget), zap.String("outputDir", outputDir))

	counter, err := NewTokenCounter(cfg.TokenModel)
	if err != nil {
		logger.Warn("Token counter unavailable, falling back to character estimate", zap.Error(err))
		counter = nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Error("Failed to create output directory", zap.String("outputDir", outputDir), zap.Error(err))
		return Result{}, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	now := time.Now()
	outputFile := filepath.Join(outputDir,
		fmt.Sprintf("%s-code-prompt-%s.txt", outputBaseName(absTarget, singleFile), now.Format(outputTimestampLayout)))

	var paths []string
	var selErrs []ErrorEntry
	if singleFile != "" {
		path := singleFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(absTarget, singleFile)
		}
		info, statErr := os.Stat(path)
		if statErr != nil {
			entry := ErrorEntry{Path: path, Reason: "Path does not exist"}
			return Result{Errors: []ErrorEntry{entry}}, fmt.Errorf("path %s does not exist", path)
		}
		if info.IsDir() {
			entry := ErrorEntry{Path: path, Reason: "Not a file"}
			return Result{Errors: []ErrorEntry{entry}}, fmt.Errorf("%s is not a file", path)
		}
		paths = []string{path}
	} else {
		paths, selErrs = Select(absTarget, cfg, logger)
	}

	col := Collect(absTarget, paths, counter, logger)
	col.Errors = append(selErrs, col.Errors...)

	var summary string
	if cfg.IncludeSummary && col.FileCount > 0 {
		summary = Summarize(col, absTarget)
	}
	doc := Assemble(absTarget, col, now, summary)

	res := Result{
		FileCount:   col.FileCount,
		TotalLines:  col.TotalLines,
		TotalSize:   col.TotalSize,
		TotalTokens: col.TotalTokens,
		BinarySkips: col.BinarySkips,
		Errors:      col.Errors,
		Document:    doc,
	}

	chunks := []string{doc}
	if cfg.ChunkSize > 0 {
		overlap := cfg.OverlapTokens
		if overlap == 0 {
			overlap = DefaultOverlapTokens
		}
		chunks = SplitChunks(doc, cfg.ChunkSize, overlap)
	}

	for i, chunk := range chunks {
		name := outputFile
		if len(chunks) > 1 {
			name = fmt.Sprintf("%s_part%d.txt", strings.TrimSuffix(outputFile, ".txt"), i+1)
		}
		if err := os.WriteFile(name, []byte(chunk), 0o644); err != nil {
			logger.Error("Failed to write output file", zap.String("file", name), zap.Error(err))
			res.Errors = append(res.Errors, ErrorEntry{Path: name, Reason: fmt.Sprintf("Failed to write (%v)", err)})
			return res, fmt.Errorf("failed to write output file %s: %w", name, err)
		}
		res.OutputFiles = append(res.OutputFiles, name)
	}

	res.Success = true
	logger.Info("Export complete",
		zap.Int("files", res.FileCount),
		zap.Int("binarySkips", res.BinarySkips),
		zap.Int("outputFiles", len(res.OutputFiles)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// outputBaseName derives the stem of the output file name: the target dir's
// base name, or in single-file mode the file's path with separators folded
// into underscores and the extension dropped.
func outputBaseName(absTarget, singleFile string) string {
	if singleFile == "" {
		return filepath.Base(absTarget)
	}
	name := strings.TrimSpace(singleFile)
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, ".\\")
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	return strings.TrimSuffix(name, filepath.Ext(name))
}
