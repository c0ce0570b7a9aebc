package tools

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
	"aliquip", "ex", "ea", "commodo", "consequat", "duis", "aute", "irure",
	"in", "reprehenderit", "voluptate", "velit", "esse", "cillum", "fugiat",
	"nulla", "pariatur", "excepteur", "sint", "occaecat", "cupidatat",
	"non", "proident", "sunt", "culpa", "qui", "officia", "deserunt",
	"mollit", "anim", "id", "est", "laborum",
}

// Lorem generates placeholder text. unit is "words", "sentences" or
// "paragraphs"; count is clamped to [1, 100].
func Lorem(unit string, count int) (string, error) {
	if count < 1 {
		count = 1
	}
	if count > 100 {
		count = 100
	}
	switch unit {
	case "words":
		return strings.Join(randomWords(count), " "), nil
	case "", "sentences":
		out := make([]string, 0, count)
		for range count {
			out = append(out, loremSentence())
		}
		return strings.Join(out, " "), nil
	case "paragraphs":
		out := make([]string, 0, count)
		for range count {
			sentences := make([]string, 0, 5)
			for range 3 + rand.IntN(3) {
				sentences = append(sentences, loremSentence())
			}
			out = append(out, strings.Join(sentences, " "))
		}
		return strings.Join(out, "\n\n"), nil
	default:
		return "", fmt.Errorf("tools: unknown lorem unit %q", unit)
	}
}

func loremSentence() string {
	words := randomWords(6 + rand.IntN(9))
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + "."
}

func randomWords(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = loremWords[rand.IntN(len(loremWords))]
	}
	return out
}
