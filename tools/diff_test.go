package tools

import "testing"

func TestDiffLines(t *testing.T) {
	a := "one\ntwo\nthree\n"
	b := "one\n2\nthree\nfour\n"
	ops := DiffLines(a, b)

	var reconstructedA, reconstructedB string
	for _, op := range ops {
		switch op.Op {
		case "equal":
			reconstructedA += op.Text
			reconstructedB += op.Text
		case "delete":
			reconstructedA += op.Text
		case "insert":
			reconstructedB += op.Text
		default:
			t.Fatalf("unknown op %q", op.Op)
		}
	}
	if reconstructedA != a || reconstructedB != b {
		t.Fatalf("diff does not reconstruct inputs:\nA=%q\nB=%q", reconstructedA, reconstructedB)
	}

	inserted, deleted := DiffStats(ops)
	if inserted != 2 || deleted != 1 {
		t.Fatalf("stats = +%d -%d, want +2 -1", inserted, deleted)
	}
}

func TestDiffLinesIdentical(t *testing.T) {
	ops := DiffLines("same\ntext\n", "same\ntext\n")
	for _, op := range ops {
		if op.Op != "equal" {
			t.Fatalf("identical inputs produced %q op", op.Op)
		}
	}
	inserted, deleted := DiffStats(ops)
	if inserted != 0 || deleted != 0 {
		t.Fatalf("stats = +%d -%d, want zero", inserted, deleted)
	}
}

func TestDiffStatsNoTrailingNewline(t *testing.T) {
	// "a\nb" is two lines even though the chunk has no trailing newline.
	ops := DiffLines("", "a\nb")
	inserted, deleted := DiffStats(ops)
	if inserted != 2 || deleted != 0 {
		t.Fatalf("stats = +%d -%d, want +2 -0", inserted, deleted)
	}

	ops = DiffLines("a\nb", "")
	inserted, deleted = DiffStats(ops)
	if inserted != 0 || deleted != 2 {
		t.Fatalf("stats = +%d -%d, want +0 -2", inserted, deleted)
	}
}

func TestDiffLinesEmpty(t *testing.T) {
	ops := DiffLines("", "added\n")
	inserted, deleted := DiffStats(ops)
	if inserted != 1 || deleted != 0 {
		t.Fatalf("stats = +%d -%d, want +1 -0", inserted, deleted)
	}
}
