package export

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// noExtensionLabel groups files without an extension in the by-type summary.
const noExtensionLabel = "(no extension)"

// Summarize renders the project summary block: totals, a per-extension
// breakdown and a directory tree annotated with each file's stats. It is a
// pure function of the collection, so identical input yields identical bytes.
func Summarize(col Collection, targetDir string) string {
	base := filepath.Base(targetDir)
	lines := []string{
		fmt.Sprintf("## %s PROJECT SUMMARY", base),
		"",
		fmt.Sprintf("Root Directory: %s", targetDir),
		fmt.Sprintf("Total Files: %d", col.FileCount),
		fmt.Sprintf("Total Size: %s", FormatFileSize(col.TotalSize)),
		fmt.Sprintf("Estimated Code Tokens: %s", FormatTokenCount(col.TotalTokens)),
	}
	if col.BinarySkips > 0 {
		lines = append(lines, fmt.Sprintf("Binary Files Skipped: %d", col.BinarySkips))
	}
	lines = append(lines, "", "### Files by Type")
	lines = append(lines, filesByType(col.Records)...)
	lines = append(lines, "", "### Directory Structure")
	lines = append(lines, renderTree(buildTree(col.Records), "")...)
	return strings.Join(lines, "\n")
}

func filesByType(records []FileRecord) []string {
	type group struct {
		count int
		lines int
		size  int64
	}
	groups := make(map[string]*group)
	for _, r := range records {
		ext := strings.ToLower(path.Ext(r.RelPath))
		if ext == "" {
			ext = noExtensionLabel
		}
		g := groups[ext]
		if g == nil {
			g = &group{}
			groups[ext] = g
		}
		g.count++
		g.lines += r.LineCount
		g.size += r.ByteSize
	}

	exts := make([]string, 0, len(groups))
	for ext := range groups {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		g := groups[ext]
		out = append(out, fmt.Sprintf("- %s: %d files, %d lines, %s", ext, g.count, g.lines, FormatFileSize(g.size)))
	}
	return out
}

// treeNode is one level of the summary tree. Interior nodes hold children;
// leaves hold the file record.
type treeNode struct {
	children map[string]*treeNode
	record   *FileRecord
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

func buildTree(records []FileRecord) *treeNode {
	root := newTreeNode()
	for i := range records {
		rec := &records[i]
		parts := strings.Split(rec.RelPath, "/")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child := node.children[part]
			if child == nil {
				child = newTreeNode()
				node.children[part] = child
			}
			node = child
		}
		leaf := newTreeNode()
		leaf.record = rec
		node.children[parts[len(parts)-1]] = leaf
	}
	return root
}

func renderTree(node *treeNode, prefix string) []string {
	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []string
	for i, key := range keys {
		last := i == len(keys)-1
		connector := "├── "
		continuation := "│   "
		if last {
			connector = "└── "
			continuation = "    "
		}
		child := node.children[key]
		if child.record == nil {
			out = append(out, prefix+connector+key+"/")
			out = append(out, renderTree(child, prefix+continuation)...)
			continue
		}
		rec := child.record
		out = append(out, fmt.Sprintf("%s%s%s: %d lines, %s, Mod: %s",
			prefix, connector, key, rec.LineCount, FormatFileSize(rec.ByteSize), rec.ModTime.Format(statModTimeLayout)))
	}
	return out
}
