package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around changes.
const DefaultContext = 3

// Line is one line of a diff. Op is ' ', '-' or '+'.
type Line struct {
	Op   byte
	Text string
}

// Lines returns the line diff turning before into after.
func Lines(before, after string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []Line
	for _, d := range diffs {
		op := byte(' ')
		switch d.Type {
		case diffpatch.DiffDelete:
			op = '-'
		case diffpatch.DiffInsert:
			op = '+'
		}
		for _, ln := range splitLines(d.Text) {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

// splitLines splits s after each '\n'.
func splitLines(s string) []string {
	var res []string
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i == -1 {
			res = append(res, s)
			break
		}
		res = append(res, s[:i+1])
		s = s[i+1:]
	}
	return res
}

// Unified returns the unified diff of before and after, labelled with
// name, or "" if they are equal.
func Unified(name string, before, after []byte, context int) string {
	if string(before) == string(after) {
		return ""
	}
	lines := Lines(string(before), string(after))
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "--- %s\n+++ %s\n", name, name)
	for _, h := range hunks(lines, context) {
		h.write(buf, lines)
	}
	return buf.String()
}

type hunk struct {
	start, end         int
	oldStart, oldCount int
	newStart, newCount int
}

func hunks(lines []Line, context int) []hunk {
	var res []hunk
	oldNo, newNo := make([]int, len(lines)+1), make([]int, len(lines)+1)
	for i, ln := range lines {
		oldNo[i+1], newNo[i+1] = oldNo[i], newNo[i]
		if ln.Op != '+' {
			oldNo[i+1]++
		}
		if ln.Op != '-' {
			newNo[i+1]++
		}
	}
	var cur *hunk
	for i, ln := range lines {
		if ln.Op == ' ' {
			continue
		}
		start := max(0, i-context)
		end := min(len(lines), i+context+1)
		if cur != nil && start <= cur.end {
			cur.end = end
			continue
		}
		if cur != nil {
			res = append(res, *cur)
		}
		cur = &hunk{start: start, end: end}
	}
	if cur != nil {
		res = append(res, *cur)
	}
	for i := range res {
		h := &res[i]
		h.oldCount = oldNo[h.end] - oldNo[h.start]
		h.newCount = newNo[h.end] - newNo[h.start]
		h.oldStart = oldNo[h.start] + 1
		h.newStart = newNo[h.start] + 1
		if h.oldCount == 0 {
			h.oldStart--
		}
		if h.newCount == 0 {
			h.newStart--
		}
	}
	return res
}

func (h *hunk) write(buf *strings.Builder, lines []Line) {
	fmt.Fprintf(buf, "@@ -%d,%d +%d,%d @@\n", h.oldStart, h.oldCount, h.newStart, h.newCount)
	for _, ln := range lines[h.start:h.end] {
		buf.WriteByte(ln.Op)
		buf.WriteString(ln.Text)
		if !strings.HasSuffix(ln.Text, "\n") {
			buf.WriteString("\n\\ No newline at end of file\n")
		}
	}
}
