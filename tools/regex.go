package tools

import "regexp"

// RegexMatch is one match with its byte range and capture groups.
type RegexMatch struct {
	Text   string   `json:"text"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Groups []string `json:"groups"`
}

// RegexResult reports the outcome of testing a pattern against input.
// A pattern that does not compile is data, not an error: Error is set and
// Matches is empty.
type RegexResult struct {
	Valid   bool         `json:"valid"`
	Error   string       `json:"error,omitempty"`
	Matches []RegexMatch `json:"matches"`
}

const maxRegexMatches = 1000

// TestRegex compiles pattern (Go RE2 syntax) and returns every match in
// input, capped at 1000.
func TestRegex(pattern, input string) *RegexResult {
	res := &RegexResult{Matches: []RegexMatch{}}
	re, err := regexp.Compile(pattern)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Valid = true

	for _, idx := range re.FindAllStringSubmatchIndex(input, maxRegexMatches) {
		m := RegexMatch{
			Text:   input[idx[0]:idx[1]],
			Start:  idx[0],
			End:    idx[1],
			Groups: []string{},
		}
		for g := 1; g < len(idx)/2; g++ {
			if idx[2*g] < 0 {
				m.Groups = append(m.Groups, "")
				continue
			}
			m.Groups = append(m.Groups, input[idx[2*g]:idx[2*g+1]])
		}
		res.Matches = append(res.Matches, m)
	}
	return res
}
