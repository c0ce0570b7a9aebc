package tools

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp is one run of the line diff: op is "equal", "insert" or "delete".
type DiffOp struct {
	Op   string `json:"op"`
	Text string `json:"text"`
}

// DiffLines computes a line-level diff from a to b.
func DiffLines(a, b string) []DiffOp {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	out := make([]DiffOp, 0, len(diffs))
	for _, d := range diffs {
		op := "equal"
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = "insert"
		case diffmatchpatch.DiffDelete:
			op = "delete"
		}
		out = append(out, DiffOp{Op: op, Text: d.Text})
	}
	return out
}

// DiffStats summarises a diff: lines inserted and deleted.
func DiffStats(ops []DiffOp) (inserted, deleted int) {
	for _, d := range ops {
		n := strings.Count(d.Text, "\n")
		// A chunk without a trailing newline still ends in a line.
		if d.Text != "" && !strings.HasSuffix(d.Text, "\n") {
			n++
		}
		switch d.Op {
		case "insert":
			inserted += n
		case "delete":
			deleted += n
		}
	}
	return inserted, deleted
}
