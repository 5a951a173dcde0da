package board

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapRejectsNilTransform(t *testing.T) {
	b := New(1, 1, []string{"A"})
	err := b.Map(bgctx(), nil)
	require.Error(t, err)
}

func TestMapIsNoopWhenTransformReturnsSameToken(t *testing.T) {
	b := newScenarioBoard()
	err := b.Map(bgctx(), func(_ context.Context, tok string) (string, error) {
		return tok, nil
	})
	require.NoError(t, err)

	v, _ := b.View("alice")
	require.Equal(t, "down", spot(v, 0, 0, 5))
}

// Scenario 6 (spec §8): map replaces every card sharing a token atomically;
// a viewer can never observe some A's replaced and others not.
func TestMapReplacesAllCardsSharingAToken(t *testing.T) {
	b := newScenarioBoard() // row 0: A B A C A
	err := b.Map(bgctx(), func(_ context.Context, tok string) (string, error) {
		if tok == "A" {
			return "Z", nil
		}
		return tok, nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0))
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 4))
	v, _ := b.View("alice")
	require.Equal(t, "my Z", spot(v, 0, 0, 5))
	require.Equal(t, "my Z", spot(v, 0, 4, 5))
}

func TestMapSwapPreservesFaceUpAndControl(t *testing.T) {
	b := New(1, 2, []string{"A", "B"})
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0)) // A face-up, alice controls

	err := b.Map(bgctx(), func(_ context.Context, tok string) (string, error) {
		switch tok {
		case "A":
			return "B", nil
		case "B":
			return "A", nil
		}
		return tok, nil
	})
	require.NoError(t, err)

	va, _ := b.View("alice")
	require.Equal(t, "my B", spot(va, 0, 0, 2)) // still face-up, still alice's
	require.Equal(t, "down", spot(va, 0, 1, 2)) // face-down card unaffected in visibility
}

func TestMapFailsOnInvalidResultToken(t *testing.T) {
	b := New(1, 1, []string{"A"})
	err := b.Map(bgctx(), func(_ context.Context, tok string) (string, error) {
		return "has space", nil
	})
	require.Error(t, err)
}

func TestMapFailsOnBlankResultToken(t *testing.T) {
	b := New(1, 1, []string{"A"})
	err := b.Map(bgctx(), func(_ context.Context, tok string) (string, error) {
		return "", nil
	})
	require.Error(t, err)
}

func TestMapPropagatesTransformError(t *testing.T) {
	b := New(1, 1, []string{"A"})
	err := b.Map(bgctx(), func(_ context.Context, tok string) (string, error) {
		return "", fmt.Errorf("boom")
	})
	require.Error(t, err)
}

func TestMapInvokesTransformOncePerDistinctToken(t *testing.T) {
	b := newScenarioBoard() // tokens A,B,A,C,A + 20 distinct fillers
	var mu sync.Mutex
	calls := make(map[string]int)
	err := b.Map(bgctx(), func(_ context.Context, tok string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		calls[tok]++
		return tok, nil
	})
	require.NoError(t, err)
	for tok, n := range calls {
		require.Equalf(t, 1, n, "token %q invoked more than once", tok)
	}
}
