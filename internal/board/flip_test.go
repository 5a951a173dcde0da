package board

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"memoryscramble/internal/boarderr"
)

func TestFlipRejectsBadArgument(t *testing.T) {
	b := New(2, 2, []string{"a", "a", "b", "b"})

	err := b.Flip(bgctx(), "", 0, 0)
	require.ErrorIs(t, err, boarderr.ErrBadArgument)

	err = b.Flip(bgctx(), "alice", -1, 0)
	require.ErrorIs(t, err, boarderr.ErrBadArgument)

	err = b.Flip(bgctx(), "alice", 2, 0)
	require.ErrorIs(t, err, boarderr.ErrBadArgument)
}

// Scenario 1 (spec §8): rule 1-B. Flipping a face-down card turns it up
// and grants the flipper control; other viewers see "up", the flipper sees
// "my".
func TestScenario1_FirstFlipGrantsControl(t *testing.T) {
	b := newScenarioBoard()
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0))

	va, _ := b.View("alice")
	vb, _ := b.View("bob")
	require.Equal(t, "my A", spot(va, 0, 0, 5))
	require.Equal(t, "up A", spot(vb, 0, 0, 5))
}

// Scenario 2 (spec §8): rule 1-D. A second player's flip of a controlled
// position blocks until the controller releases it, then completes.
func TestScenario2_Rule1DWaitsThenResolves(t *testing.T) {
	b := newScenarioBoard()
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0)) // alice controls (0,0) = A

	bobDone := make(chan error, 1)
	go func() {
		bobDone <- b.Flip(bgctx(), "bob", 0, 0)
	}()

	select {
	case <-bobDone:
		t.Fatal("bob's flip should still be waiting on rule 1-D")
	case <-time.After(50 * time.Millisecond):
	}

	// alice's second flip at (0,1) is a mismatch (B != A); it releases
	// control of (0,0), which should wake bob.
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 1))

	select {
	case err := <-bobDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("bob's flip did not resolve after control was released")
	}

	vb, _ := b.View("bob")
	va, _ := b.View("alice")
	require.Equal(t, "my A", spot(vb, 0, 0, 5))
	require.Equal(t, "up A", spot(va, 0, 0, 5))
}

// Scenario 3 (spec §8): rule 2-D match plus rule 3-A removal on the
// following flip.
func TestScenario3_MatchThenRemovalOnNextFlip(t *testing.T) {
	b := newScenarioBoard()
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0)) // A
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 2)) // A, matches

	va, _ := b.View("alice")
	vb, _ := b.View("bob")
	require.Equal(t, "my A", spot(va, 0, 0, 5))
	require.Equal(t, "my A", spot(va, 0, 2, 5))
	require.Equal(t, "up A", spot(vb, 0, 0, 5))
	require.Equal(t, "up A", spot(vb, 0, 2, 5))

	require.NoError(t, b.Flip(bgctx(), "alice", 0, 1)) // triggers stage A cleanup

	va, _ = b.View("alice")
	require.Equal(t, "none", spot(va, 0, 0, 5))
	require.Equal(t, "none", spot(va, 0, 2, 5))
	require.Equal(t, "my B", spot(va, 0, 1, 5))
}

// Scenario 4 (spec §8): rule 3-B leaves a card another player has since
// taken control of untouched, but still hides an uncontrolled mismatched
// card.
func TestScenario4_MismatchPreservesControlledCard(t *testing.T) {
	b := newScenarioBoard()
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0)) // A, no match pending
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 1)) // A vs B: mismatch, not an error

	require.NoError(t, b.Flip(bgctx(), "bob", 0, 0)) // bob takes control of (0,0)

	require.NoError(t, b.Flip(bgctx(), "alice", 0, 2)) // stage A cleanup runs here

	va, _ := b.View("alice")
	require.Equal(t, "up A", spot(va, 0, 0, 5)) // still up: bob controls it
	require.Equal(t, "down", spot(va, 0, 1, 5)) // hidden: nobody controls it
}

// Boundary behaviour (spec §8): 1x1 board, second flip of the same
// position fails CardAlreadyControlled and leaves the card face-up,
// uncontrolled.
func TestBoundary_SinglePositionSecondFlipSelfControl(t *testing.T) {
	b := New(1, 1, []string{"A"})
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0))

	err := b.Flip(bgctx(), "alice", 0, 0)
	require.ErrorIs(t, err, boarderr.ErrCardAlreadyControlled)

	v, _ := b.View("bob")
	require.Equal(t, "up A", spot(v, 0, 0, 1))
}

// Boundary behaviour: rule 2-A/2-B release the first card and surface the
// error; the release is immediately visible via View.
func TestBoundary_SecondFlipFailureReleasesFirst(t *testing.T) {
	b := New(1, 2, []string{"A", "A"})
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0))
	require.NoError(t, b.Flip(bgctx(), "bob", 0, 1)) // bob now controls (0,1)

	err := b.Flip(bgctx(), "alice", 0, 1)
	require.ErrorIs(t, err, boarderr.ErrCardAlreadyControlled)

	v, _ := b.View("someone-else")
	require.Equal(t, "up A", spot(v, 0, 0, 2)) // alice's first card released
}

func TestInvariantsHoldAfterScenario(t *testing.T) {
	b := newScenarioBoard()
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0))
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 2))
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 1))
	require.NoError(t, b.CheckInvariants())
}

func TestFlipWaitCancelledByContext(t *testing.T) {
	b := New(1, 2, []string{"A", "B"})
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 0))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := b.Flip(ctx, "bob", 0, 0)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// alice releasing control afterward must not panic or deadlock even
	// though bob's waiter was already cleaned up.
	require.NoError(t, b.Flip(bgctx(), "alice", 0, 1))
}
