package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newScenarioBoard builds the 5x5 board from the design's concrete
// scenarios: first row A B A C A, remaining rows distinct filler tokens.
func newScenarioBoard() *Board {
	tokens := make([]string, 25)
	copy(tokens, []string{"A", "B", "A", "C", "A"})
	for i := 5; i < 25; i++ {
		tokens[i] = string(rune('f')) + string(rune('0'+i))
	}
	return New(5, 5, tokens)
}

func TestNewRejectsBadDimensions(t *testing.T) {
	require.Panics(t, func() { New(0, 3, []string{}) })
	require.Panics(t, func() { New(3, 0, []string{}) })
}

func TestNewRejectsWrongTokenCount(t *testing.T) {
	require.Panics(t, func() { New(2, 2, []string{"a", "b", "c"}) })
}

func TestNewRejectsInvalidToken(t *testing.T) {
	require.Panics(t, func() { New(1, 2, []string{"a", "has space"}) })
	require.Panics(t, func() { New(1, 1, []string{""}) })
}

func TestValidateToken(t *testing.T) {
	require.True(t, ValidateToken("A"))
	require.True(t, ValidateToken("café"))
	require.False(t, ValidateToken(""))
	require.False(t, ValidateToken("a b"))
	require.False(t, ValidateToken("a\tb"))
}

func TestViewRejectsBlankViewer(t *testing.T) {
	b := New(2, 2, []string{"a", "a", "b", "b"})
	_, err := b.View("")
	require.Error(t, err)
	_, err = b.View("   ")
	require.Error(t, err)
}

func TestViewAllDownInitially(t *testing.T) {
	b := newScenarioBoard()
	v, err := b.View("alice")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(v, "\n"), "\n")
	require.Len(t, lines, 26) // header + 25 spots, matching Rows*Cols+1
	require.Equal(t, "5x5", lines[0])
	for _, line := range lines[1:] {
		require.Equal(t, "down", line)
	}
}

func TestRenderingLineCountForAnyViewer(t *testing.T) {
	b := newScenarioBoard()
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0))
	for _, viewer := range []string{"alice", "bob", "someone-else"} {
		v, err := b.View(viewer)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(v, "\n"), "\n")
		require.Len(t, lines, 26)
	}
}
