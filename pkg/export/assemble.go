package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Assemble concatenates header, per-file blocks, the closing report and the
// END terminator into one logical document, with every segment separated by
// the delimiter. A non-empty summary is spliced in directly after the header
// delimiter. The delimiter appearing verbatim inside file content is an
// accepted limitation; it merely becomes a harmless extra chunk boundary.
func Assemble(targetDir string, col Collection, now time.Time, summary string) string {
	base := filepath.Base(targetDir)
	segments := []string{
		fmt.Sprintf("%s Code Export (%s)", base, now.Format(statModTimeLayout)),
		"###",
	}

	for _, rec := range col.Records {
		segments = append(segments,
			fmt.Sprintf("%s (%dL, %s, Mod: %s)",
				rec.DisplayPath, rec.LineCount, FormatFileSize(rec.ByteSize), rec.ModTime.Format(statModTimeLayout)),
			rec.Content,
			"###")
	}

	closing := fmt.Sprintf("Files: %d, Lines: %d, Size: %s", col.FileCount, col.TotalLines, FormatFileSize(col.TotalSize))
	if col.BinarySkips > 0 {
		closing += fmt.Sprintf(" (Skipped %d binary files)", col.BinarySkips)
	}
	segments = append(segments, closing)

	if len(col.Errors) > 0 {
		segments = append(segments, "\nErrors:")
		for _, e := range col.Errors {
			segments = append(segments, "- "+e.String())
		}
	}
	segments = append(segments, "END")

	doc := strings.Join(segments, "\n")
	if summary != "" {
		pos := strings.Index(doc, Delimiter) + len(Delimiter)
		doc = doc[:pos] + summary + "\n\n###\n" + doc[pos:]
	}
	return doc
}
