package export

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFileSize renders a byte count the way the export document expects:
// raw bytes below 1 KiB, one-decimal KB below 1 MiB, two-decimal MB above.
func FormatFileSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	}
}

// FormatTokenCount formats n with comma thousands separators, e.g. 1234567
// -> "1,234,567". Token totals in the summary and CLI report use this form.
func FormatTokenCount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
