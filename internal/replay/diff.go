package replay

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const diffContext = 3

type lineOp struct {
	op   diffmatchpatch.Operation
	text string
}

// UnifiedDiff returns a line-based unified diff of before and after, or ""
// when they are equal.
func UnifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var ops []lineOp
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			ops = append(ops, lineOp{op: d.Type, text: line})
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)
	for _, h := range hunks(ops) {
		writeHunk(&sb, ops, h)
	}
	return sb.String()
}

// splitLines splits text after each newline and drops the newlines.
func splitLines(text string) []string {
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\n")
	}
	return parts
}

type hunk struct{ start, end int } // op indices, end exclusive

// hunks groups changed lines with diffContext lines around them, merging
// groups whose context overlaps.
func hunks(ops []lineOp) []hunk {
	var out []hunk
	for i, o := range ops {
		if o.op == diffmatchpatch.DiffEqual {
			continue
		}
		start := max(i-diffContext, 0)
		end := min(i+1+diffContext, len(ops))
		if n := len(out); n > 0 && start <= out[n-1].end {
			out[n-1].end = max(out[n-1].end, end)
			continue
		}
		out = append(out, hunk{start: start, end: end})
	}
	return out
}

func writeHunk(sb *strings.Builder, ops []lineOp, h hunk) {
	// 1-based line numbers of the hunk's first line on each side.
	oldLine, newLine := 1, 1
	for _, o := range ops[:h.start] {
		if o.op != diffmatchpatch.DiffInsert {
			oldLine++
		}
		if o.op != diffmatchpatch.DiffDelete {
			newLine++
		}
	}

	oldCount, newCount := 0, 0
	var body strings.Builder
	for _, o := range ops[h.start:h.end] {
		switch o.op {
		case diffmatchpatch.DiffEqual:
			oldCount++
			newCount++
			body.WriteString(" ")
		case diffmatchpatch.DiffDelete:
			oldCount++
			body.WriteString("-")
		case diffmatchpatch.DiffInsert:
			newCount++
			body.WriteString("+")
		}
		body.WriteString(o.text)
		body.WriteString("\n")
	}

	fmt.Fprintf(sb, "@@ -%s +%s @@\n", hunkRange(oldLine, oldCount), hunkRange(newLine, newCount))
	sb.WriteString(body.String())
}

// hunkRange formats "start,count" the way diff(1) does: an empty side
// starts at the line before it.
func hunkRange(start, count int) string {
	if count == 0 {
		start--
	}
	if count == 1 {
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}
