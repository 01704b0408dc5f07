package index

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyInput(t *testing.T) {
	s := NewSplitter(2000, 200)
	assert.Empty(t, s.Split(""))
}

func TestSplitShortInputIsSingleChunk(t *testing.T) {
	s := NewSplitter(2000, 200)
	text := "A short judicial opinion."

	chunks := s.Split(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitInputExactlyMaxChars(t *testing.T) {
	s := NewSplitter(100, 20)
	text := strings.Repeat("a", 100)

	chunks := s.Split(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

// With no delimiters at all, every cut is a hard cut at max_chars and the
// window advances by max_chars-overlap each time.
func TestSplitHardCutsWithoutDelimiters(t *testing.T) {
	s := NewSplitter(2000, 200)
	text := strings.Repeat("a", 4500)

	chunks := s.Split(text)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 2000) // start 0
	assert.Len(t, chunks[1], 2000) // start 1800
	assert.Len(t, chunks[2], 900)  // start 3600
}

func TestSplitHardCutOffsets(t *testing.T) {
	s := NewSplitter(2000, 200)
	// distinct rotating alphabet so offsets are observable in content
	var b strings.Builder
	for i := 0; i < 4500; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	text := b.String()

	chunks := s.Split(text)

	require.Len(t, chunks, 3)
	assert.Equal(t, text[0:2000], chunks[0])
	assert.Equal(t, text[1800:3800], chunks[1])
	assert.Equal(t, text[3600:4500], chunks[2])
}

// A final window longer than MaxChars-Overlap leaves text behind the
// overlap step, which comes out as one last short chunk.
func TestSplitEmitsTailChunkBehindOverlap(t *testing.T) {
	s := NewSplitter(2000, 200)
	text := strings.Repeat("a", 5500)

	chunks := s.Split(text)

	require.Len(t, chunks, 4)
	assert.Len(t, chunks[0], 2000) // start 0
	assert.Len(t, chunks[1], 2000) // start 1800
	assert.Len(t, chunks[2], 1900) // start 3600, clamped to the end
	assert.Len(t, chunks[3], 100)  // start 5400
}

func TestSplitNoTailChunkAtStrideBoundary(t *testing.T) {
	s := NewSplitter(2000, 200)
	// the final window is exactly one stride, so nothing is left behind
	text := strings.Repeat("a", 5400)

	chunks := s.Split(text)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[2], 1800)
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	s := NewSplitter(100, 10)
	text := strings.Repeat("a", 50) + "\n\n" + strings.Repeat("b", 100)

	chunks := s.Split(text)

	require.NotEmpty(t, chunks)
	assert.Equal(t, strings.Repeat("a", 50), chunks[0])
}

// A newline anywhere in the window beats a sentence boundary closer to
// the provisional end: delimiter kinds are tried in strict priority
// order, not by proximity.
func TestSplitDelimiterPriority(t *testing.T) {
	s := NewSplitter(20, 2)
	text := "one\ntwo. three" + strings.Repeat("x", 40)

	chunks := s.Split(text)

	require.NotEmpty(t, chunks)
	assert.Equal(t, "one", chunks[0])
}

func TestSplitSentenceBoundary(t *testing.T) {
	s := NewSplitter(20, 2)
	text := "First. Second phrase" + strings.Repeat("y", 40)

	chunks := s.Split(text)

	require.NotEmpty(t, chunks)
	assert.Equal(t, "First.", chunks[0])
}

func TestSplitTotalityAndBoundedness(t *testing.T) {
	s := NewSplitter(80, 15)
	text := strings.Repeat("The court finds the claim admissible. ", 60)

	chunks := s.Split(text)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 80)
		// every chunk is a verbatim span of the input
		assert.Contains(t, text, chunk)
	}
}

// Overlap >= chunk stride must not stall the scan; the start+1 floor
// guarantees at most len(text) iterations.
func TestSplitTerminatesWithAggressiveOverlap(t *testing.T) {
	s := Splitter{MaxChars: 10, Overlap: 9}
	text := strings.Repeat("word and ", 50)

	chunks := s.Split(text)

	assert.NotEmpty(t, chunks)
	assert.Less(t, len(chunks), len(text)+1)
}

func TestSplitNeverBreaksRunes(t *testing.T) {
	s := NewSplitter(2000, 200)
	text := strings.Repeat("á", 3000)

	chunks := s.Split(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, 2000, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, 1200, utf8.RuneCountInString(chunks[1]))
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk))
	}
}

func TestChunksSequenceIsRestartable(t *testing.T) {
	s := NewSplitter(50, 10)
	text := strings.Repeat("Sentencia de tutela. ", 30)
	seq := s.Chunks(text)

	first := make([]string, 0)
	for chunk := range seq {
		first = append(first, chunk)
	}
	second := make([]string, 0)
	for chunk := range seq {
		second = append(second, chunk)
	}

	assert.Equal(t, first, second)
}

func TestChunksEarlyBreak(t *testing.T) {
	s := NewSplitter(50, 10)
	text := strings.Repeat("Sentencia de tutela. ", 30)

	var got []string
	for chunk := range s.Chunks(text) {
		got = append(got, chunk)
		if len(got) == 2 {
			break
		}
	}

	assert.Len(t, got, 2)
}

func TestNewSplitterClampsOverlap(t *testing.T) {
	s := NewSplitter(10, 50)
	assert.Less(t, s.Overlap, s.MaxChars)

	chunks := s.Split(strings.Repeat("z", 100))
	assert.NotEmpty(t, chunks)
}
