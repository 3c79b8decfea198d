package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("one line no terminator"))
	assert.Equal(t, 1, countLines("one line\n"))
	assert.Equal(t, 2, countLines("first\nsecond"))
	assert.Equal(t, 2, countLines("first\r\nsecond\r\n"))
	assert.Equal(t, 3, countLines("a\nb\nc\n"))
}

func TestCollectRecordsStats(t *testing.T) {
	dir := t.TempDir()
	html := writeFile(t, dir, "src/index.html", []byte("<html>\n<body>\n</body>\n</html>\n"))
	js := writeFile(t, dir, "app.js", []byte("var a = 1;"))

	col := Collect(dir, []string{js, html}, nil, zap.NewNop())

	require.Len(t, col.Records, 2)
	assert.Equal(t, 2, col.FileCount)
	assert.Empty(t, col.Errors)
	assert.Zero(t, col.BinarySkips)

	first := col.Records[0]
	assert.Equal(t, "app.js", first.RelPath)
	assert.Equal(t, filepath.Join(filepath.Base(dir), "app.js"), first.DisplayPath)
	assert.Equal(t, 1, first.LineCount)
	assert.Equal(t, int64(10), first.ByteSize)

	second := col.Records[1]
	assert.Equal(t, "src/index.html", second.RelPath)
	assert.Equal(t, 4, second.LineCount)

	assert.Equal(t, 2+4, col.TotalLines)
	assert.Equal(t, int64(10+30), col.TotalSize)
	assert.Equal(t, (10+30)/charsPerToken, col.TotalTokens)
}

func TestCollectSkipsBinaries(t *testing.T) {
	dir := t.TempDir()
	bin := writeFile(t, dir, "blob.js", []byte("var a;\x00binary"))
	text := writeFile(t, dir, "ok.js", []byte("var b;\n"))

	col := Collect(dir, []string{bin, text}, nil, zap.NewNop())

	assert.Equal(t, 1, col.FileCount)
	assert.Equal(t, 1, col.BinarySkips)
	require.Len(t, col.Errors, 1)
	assert.Equal(t, bin, col.Errors[0].Path)
	assert.Equal(t, "Skipped (binary file)", col.Errors[0].Reason)
	require.Len(t, col.Records, 1)
	assert.Equal(t, "ok.js", col.Records[0].RelPath)
}

func TestCollectRecordsReadFailures(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone.js")
	text := writeFile(t, dir, "ok.js", []byte("var b;\n"))

	col := Collect(dir, []string{missing, text}, nil, zap.NewNop())

	// An unreadable file is classified binary by the fail-safe detector and
	// skipped; the batch still completes.
	assert.Equal(t, 1, col.FileCount)
	assert.Equal(t, 1, col.BinarySkips)
	require.Len(t, col.Errors, 1)
	assert.Equal(t, missing, col.Errors[0].Path)
}

func TestCollectOutsideRootUsesAbsolutePath(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	outside := writeFile(t, other, "external.js", []byte("var x;\n"))

	col := Collect(root, []string{outside}, nil, zap.NewNop())

	require.Len(t, col.Records, 1)
	assert.Equal(t, outside, col.Records[0].DisplayPath)
}

type fixedCounter struct{ per int }

func (f fixedCounter) Count(string) int { return f.per }

func TestCollectUsesTokenCounter(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.js", []byte("var a;\n"))
	b := writeFile(t, dir, "b.js", []byte("var b;\n"))

	col := Collect(dir, []string{a, b}, fixedCounter{per: 7}, zap.NewNop())
	assert.Equal(t, 14, col.TotalTokens)
}
