package index

import (
	"iter"
	"strings"
)

const (
	DefaultMaxChunkChars = 2000 // roughly 500 tokens
	DefaultChunkOverlap  = 200
)

// Boundary delimiters tried in priority order when looking for a natural
// cut point inside a window. The first kind found anywhere in the window
// wins, even if another kind sits closer to the provisional end.
var delimiters = []string{"\n\n", "\n", ". ", " "}

// Splitter cuts text into overlapping chunks of at most MaxChars
// characters, preferring paragraph, line, sentence and word boundaries
// over hard cuts.
type Splitter struct {
	MaxChars int
	Overlap  int
}

// NewSplitter returns a Splitter with defaults applied for non-positive
// values. Overlap is clamped below MaxChars so the scan always advances.
func NewSplitter(maxChars, overlap int) Splitter {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= maxChars {
		overlap = maxChars - 1
	}
	return Splitter{MaxChars: maxChars, Overlap: overlap}
}

// Chunks returns a lazy, restartable sequence of non-empty spans covering
// text. Empty input yields nothing; input within MaxChars yields a single
// chunk equal to the whole input. Positions are measured in runes so a
// hard cut can never land inside a multibyte character.
func (s Splitter) Chunks(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		runes := []rune(text)
		n := len(runes)
		if n <= s.MaxChars {
			yield(text)
			return
		}

		start := 0
		for start < n {
			end := start + s.MaxChars
			// The overlap steps back from the provisional end, not the
			// clamped one: a final window longer than MaxChars-Overlap
			// still leaves a tail chunk behind the overlap step.
			stride := end
			if end >= n {
				end = n
			} else if cut, ok := lastDelimiter(runes, start, end); ok {
				end = cut
				stride = cut
			}

			chunk := strings.TrimSpace(string(runes[start:end]))
			if chunk != "" && !yield(chunk) {
				return
			}

			// The start+1 floor guarantees forward progress even when
			// overlap >= end-start.
			next := stride - s.Overlap
			if next <= start {
				next = start + 1
			}
			start = next
		}
	}
}

// Split collects the chunk sequence into a slice.
func (s Splitter) Split(text string) []string {
	var chunks []string
	for chunk := range s.Chunks(text) {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// lastDelimiter searches runes[start:end] backward for the last occurrence
// of each delimiter in priority order and returns the position just past
// the first one found.
func lastDelimiter(runes []rune, start, end int) (int, bool) {
	for _, delim := range delimiters {
		d := []rune(delim)
		for i := end - len(d); i >= start; i-- {
			if runesMatch(runes, i, d) {
				return i + len(d), true
			}
		}
	}
	return 0, false
}

func runesMatch(runes []rune, at int, delim []rune) bool {
	for j, r := range delim {
		if runes[at+j] != r {
			return false
		}
	}
	return true
}
