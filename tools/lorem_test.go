package tools

import (
	"strings"
	"testing"
)

func TestLoremWords(t *testing.T) {
	out, err := Lorem("words", 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(strings.Fields(out)); got != 10 {
		t.Fatalf("word count = %d, want 10", got)
	}
}

func TestLoremSentences(t *testing.T) {
	out, err := Lorem("sentences", 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out, "."); got != 3 {
		t.Fatalf("sentence count = %d, want 3", got)
	}
	if out[0] < 'A' || out[0] > 'Z' {
		t.Fatalf("sentence not capitalized: %q", out[:20])
	}
}

func TestLoremParagraphs(t *testing.T) {
	out, err := Lorem("paragraphs", 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(strings.Split(out, "\n\n")); got != 2 {
		t.Fatalf("paragraph count = %d, want 2", got)
	}
}

func TestLoremClampAndErrors(t *testing.T) {
	out, err := Lorem("words", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(strings.Fields(out)) != 1 {
		t.Fatalf("count 0 output: %q", out)
	}

	if _, err := Lorem("chapters", 1); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}
