package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType represents the type of diff operation
type LineType int

const (
	LineEqual LineType = iota
	LineInsert
	LineDelete
)

// contextLines is how many unchanged lines surround a change in Unified.
const contextLines = 3

// Line is a single line of a diff.
type Line struct {
	Type    LineType
	Content string
}

// Result is a line diff between two documents.
type Result struct {
	Lines   []Line
	Added   int
	Removed int
}

// Diff computes a line diff between two documents using go-diff's line
// mode.
func Diff(oldDoc, newDoc []byte) *Result {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(string(oldDoc), string(newDoc))
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	res := &Result{}
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		typ := LineEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			typ = LineInsert
		case diffmatchpatch.DiffDelete:
			typ = LineDelete
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			res.Lines = append(res.Lines, Line{Type: typ, Content: line})
			switch typ {
			case LineInsert:
				res.Added++
			case LineDelete:
				res.Removed++
			}
		}
	}
	return res
}

// HasChanges returns true if there are any changes
func (r *Result) HasChanges() bool {
	return r.Added > 0 || r.Removed > 0
}

// Summary returns a brief summary of changes
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return "No changes"
	}

	var parts []string
	if r.Added > 0 {
		parts = append(parts, "+"+strconv.Itoa(r.Added))
	}
	if r.Removed > 0 {
		parts = append(parts, "-"+strconv.Itoa(r.Removed))
	}
	return strings.Join(parts, " ")
}

// Unified renders the diff with "+"/"-"/" " prefixes. Runs of unchanged
// lines longer than the surrounding context are collapsed into "@@" markers.
func (r *Result) Unified(oldName, newName string) string {
	var sb strings.Builder
	sb.WriteString("--- " + oldName + "\n")
	sb.WriteString("+++ " + newName + "\n")

	if !r.HasChanges() {
		return sb.String()
	}

	keep := make([]bool, len(r.Lines))
	for i, l := range r.Lines {
		if l.Type == LineEqual {
			continue
		}
		for j := max(0, i-contextLines); j <= min(len(r.Lines)-1, i+contextLines); j++ {
			keep[j] = true
		}
	}

	skipped := 0
	oldLine := 1
	for i, l := range r.Lines {
		if !keep[i] {
			skipped++
			oldLine++
			continue
		}
		if skipped > 0 || i == 0 {
			sb.WriteString(fmt.Sprintf("@@ line %d @@\n", oldLine))
			skipped = 0
		}
		switch l.Type {
		case LineEqual:
			sb.WriteString(" " + l.Content + "\n")
			oldLine++
		case LineInsert:
			sb.WriteString("+" + l.Content + "\n")
		case LineDelete:
			sb.WriteString("-" + l.Content + "\n")
			oldLine++
		}
	}
	return sb.String()
}
