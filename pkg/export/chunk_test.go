package export

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocument produces a delimited document of numbered blocks, each block
// roughly blockSize characters.
func buildDocument(blocks, blockSize int) string {
	segments := []string{"header", "###"}
	for i := 0; i < blocks; i++ {
		body := fmt.Sprintf("block-%03d ", i)
		body += strings.Repeat("x", blockSize-len(body))
		segments = append(segments, body, "###")
	}
	segments = append(segments, "END")
	return strings.Join(segments, "\n")
}

func TestSplitChunksShortDocument(t *testing.T) {
	doc := "short document"
	chunks := SplitChunks(doc, 1000, 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, doc, chunks[0])
}

func TestSplitChunksAlignsToDelimiters(t *testing.T) {
	doc := buildDocument(12, 800)
	maxTokens := 1000 // 4000-char budget
	chunks := SplitChunks(doc, maxTokens, 100)

	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), maxTokens*charsPerToken, "chunk %d exceeds budget", i)
		if i < len(chunks)-1 {
			assert.True(t, strings.HasSuffix(chunk, Delimiter),
				"chunk %d does not end at a delimiter: %q", i, chunk[len(chunk)-20:])
		}
	}
	assert.True(t, strings.HasPrefix(chunks[0], "header\n###\n"))
	assert.True(t, strings.HasSuffix(chunks[len(chunks)-1], "END"))
}

func TestSplitChunksOverlap(t *testing.T) {
	doc := buildDocument(10, 880) // ~9000 characters
	chunks := SplitChunks(doc, 1000, 100)

	require.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		// Each chunk restarts inside the previous one: its head must appear
		// as a suffix region of the previous chunk.
		head := cur
		if len(head) > len(prev) {
			head = head[:len(prev)]
		}
		overlapped := false
		for k := len(head); k > 0; k-- {
			if strings.HasSuffix(prev, head[:k]) {
				overlapped = true
				break
			}
		}
		assert.True(t, overlapped, "chunks %d and %d share no overlap", i-1, i)
	}
}

func TestSplitChunksLosslessReconstruction(t *testing.T) {
	doc := buildDocument(15, 700)
	chunks := SplitChunks(doc, 1000, 100)
	require.Greater(t, len(chunks), 1)

	// Every chunk is a substring of the document at a strictly increasing
	// offset; concatenating with overlaps removed reproduces the document.
	pos := 0
	end := 0
	for i, chunk := range chunks {
		idx := strings.Index(doc[pos:], chunk)
		require.GreaterOrEqual(t, idx, 0, "chunk %d is not a document substring", i)
		start := pos + idx
		if i > 0 {
			assert.Less(t, start, end, "chunk %d does not overlap its predecessor", i)
		}
		end = start + len(chunk)
		pos = start + 1
	}
	assert.Equal(t, len(doc), end, "chunks do not cover the document tail")
	assert.True(t, strings.HasPrefix(doc, chunks[0]))
}

func TestSplitChunksNoDelimiterFallsBackToRawCut(t *testing.T) {
	doc := strings.Repeat("a", 10000) // one pathological block, no delimiters
	chunks := SplitChunks(doc, 1000, 100)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 4000)
	}
	assert.Equal(t, doc, strings.Join(chunks, ""))
}
