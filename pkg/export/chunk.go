package export

import "strings"

// SplitChunks divides the assembled document into size-bounded pieces of at
// most maxTokens tokens (1 token ~ 4 characters). A cut that would land
// mid-file is pulled back to the last delimiter inside the window, and each
// following chunk restarts overlapTokens worth of characters before the
// previous cut, snapped forward to the next delimiter so no partial file
// body is duplicated. When a window holds no delimiter at all the raw
// character cut is used. A document no longer than one chunk comes back
// whole.
func SplitChunks(content string, maxTokens, overlapTokens int) []string {
	maxChars := maxTokens * charsPerToken
	overlapChars := overlapTokens * charsPerToken
	if maxChars <= 0 || len(content) <= maxChars {
		return []string{content}
	}

	var chunks []string
	start := 0
	for start < len(content) {
		end := start + maxChars
		if end > len(content) {
			end = len(content)
		}
		if end < len(content) {
			if b := strings.LastIndex(content[start:end], Delimiter); b != -1 {
				end = start + b + len(Delimiter)
			}
		}
		chunks = append(chunks, content[start:end])
		if end >= len(content) {
			break
		}

		overlapStart := end - overlapChars
		if overlapStart < start {
			overlapStart = start
		}
		if next := strings.Index(content[overlapStart:], Delimiter); next != -1 {
			start = overlapStart + next + 1
		} else {
			start = end
		}
	}
	return chunks
}
