package export

import (
	"bytes"
	"errors"
	"io"
	"os"
	"unicode/utf8"
)

// binarySampleSize is how many bytes from the start of a file the detector inspects.
const binarySampleSize = 1024

// IsBinary reports whether the file at path looks binary. It reads at most
// binarySampleSize bytes: an empty sample is text, a NUL byte means binary,
// and otherwise the sample must decode as UTF-8. Unreadable files are
// reported as binary so that callers skip them instead of failing the run.
//
// This is a heuristic. A multi-byte rune cut by the sample boundary, or a
// file whose invalid bytes sit past the sample, can be misclassified; the
// stats collector re-checks the full content and records such files as
// binary skips.
func IsBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, binarySampleSize)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return true
	}
	sample := buf[:n]

	if len(sample) == 0 {
		return false
	}
	if bytes.IndexByte(sample, 0) != -1 {
		return true
	}
	return !utf8.Valid(sample)
}
