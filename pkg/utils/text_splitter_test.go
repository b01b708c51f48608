package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_ShortInputIsSingleChunk(t *testing.T) {
	chunks := SplitText("short text", 1000, 150)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitText_ChunksOverlap(t *testing.T) {
	text := strings.Repeat("word ", 500) // 2500 runes
	chunks := SplitText(text, 1000, 150)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 1000)
	}

	// Consecutive chunks share boundary text
	first := []rune(chunks[0])
	tail := string(first[len(first)-50:])
	assert.Contains(t, chunks[1], strings.TrimSpace(tail))
}

func TestSplitText_PrefersWhitespaceBoundary(t *testing.T) {
	text := strings.Repeat("alpha beta gamma ", 200)
	chunks := SplitText(text, 1000, 150)

	for i, c := range chunks {
		if i == len(chunks)-1 {
			continue
		}
		assert.True(t, strings.HasSuffix(c, " "), "chunk %d should end on whitespace", i)
	}
}

func TestSplitText_CoversWholeInput(t *testing.T) {
	text := strings.Repeat("abcdefghij", 300) // no whitespace at all
	chunks := SplitText(text, 1000, 150)

	require.NotEmpty(t, chunks)
	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "héll", Truncate("héllo", 4))
}
