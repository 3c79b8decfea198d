package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// statModTimeLayout is how modification times appear in metadata lines and
// the directory tree.
const statModTimeLayout = "2006-01-02 15:04"

// FileRecord holds the stats and content of one successfully read text file.
// Records are created once by Collect and never modified afterwards.
type FileRecord struct {
	RelPath     string // slash-normalized path relative to the target dir; tree key
	DisplayPath string // target base name joined with the relative path, platform separators
	LineCount   int
	ByteSize    int64
	ModTime     time.Time
	Content     string
}

// Collection is the immutable result bundle the stats collector hands to the
// summary generator and the document assembler.
type Collection struct {
	Records     []FileRecord
	Errors      []ErrorEntry
	BinarySkips int
	FileCount   int
	TotalLines  int
	TotalSize   int64
	TotalTokens int
}

// Collect reads each candidate file once, in order. Binary files are skipped
// and counted, unreadable or undecodable files become error entries, and
// running totals accumulate alongside the record list. No file failure aborts
// the batch.
func Collect(targetDir string, paths []string, counter TokenCounter, logger *zap.Logger) Collection {
	var col Collection
	totalChars := 0

	for _, path := range paths {
		if IsBinary(path) {
			col.BinarySkips++
			col.Errors = append(col.Errors, ErrorEntry{Path: path, Reason: "Skipped (binary file)"})
			logger.Debug("Skipped binary file", zap.String("path", path))
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			col.Errors = append(col.Errors, ErrorEntry{Path: path, Reason: fmt.Sprintf("Failed to process (%v)", err)})
			logger.Warn("Failed to read file", zap.String("path", path), zap.Error(err))
			continue
		}
		if !utf8.Valid(raw) {
			// The sample-based pre-check missed this one; count it with the
			// binary skips so the totals stay honest.
			col.BinarySkips++
			col.Errors = append(col.Errors, ErrorEntry{Path: path, Reason: "Failed to process (file is not valid UTF-8)"})
			logger.Warn("File is not valid UTF-8", zap.String("path", path))
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			col.Errors = append(col.Errors, ErrorEntry{Path: path, Reason: fmt.Sprintf("Failed to process (%v)", err)})
			logger.Warn("Failed to stat file", zap.String("path", path), zap.Error(err))
			continue
		}

		content := string(raw)
		rec := FileRecord{
			RelPath:     relTreePath(targetDir, path),
			DisplayPath: displayPath(targetDir, path),
			LineCount:   countLines(content),
			ByteSize:    info.Size(),
			ModTime:     info.ModTime(),
			Content:     content,
		}
		col.Records = append(col.Records, rec)
		col.FileCount++
		col.TotalLines += rec.LineCount
		col.TotalSize += rec.ByteSize
		totalChars += len(content)
		if counter != nil {
			col.TotalTokens += counter.Count(content)
		}
	}

	if counter == nil {
		col.TotalTokens = totalChars / charsPerToken
	}

	logger.Debug("Collection complete",
		zap.Int("files", col.FileCount),
		zap.Int("binarySkips", col.BinarySkips),
		zap.Int("errors", len(col.Errors)))
	return col
}

// countLines counts line terminators, with a final unterminated line still
// counting as a line.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// relTreePath returns the slash-normalized path of path relative to
// targetDir, used as the key when building the summary tree. Paths outside
// targetDir keep their absolute form.
func relTreePath(targetDir, path string) string {
	rel, err := filepath.Rel(targetDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// displayPath joins the target dir's base name with the file's relative path
// using the platform separator. Files outside the target dir (single-file
// mode pointing elsewhere) fall back to the path as given.
func displayPath(targetDir, path string) string {
	rel, err := filepath.Rel(targetDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.Join(filepath.Base(targetDir), rel)
}
