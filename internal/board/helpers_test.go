package board

import (
	"context"
	"strings"
)

// bgctx is the context used by tests that don't exercise cancellation.
func bgctx() context.Context { return context.Background() }

// spot returns the rendering line for (row, col) from a View/Watch result.
func spot(rendering string, row, col, cols int) string {
	lines := strings.Split(strings.TrimRight(rendering, "\n"), "\n")
	return lines[1+row*cols+col]
}
