package board

import (
	"fmt"
	"strings"

	"memoryscramble/internal/boarderr"
)

// View renders the board as seen by viewerID:
//
//	RowsxCols
//	spot(0,0)
//	spot(0,1)
//	...
//	spot(Rows-1,Cols-1)
//
// in row-major order, where each spot is exactly one of "none", "down",
// "my <token>" (face-up and controlled by viewerID), or "up <token>"
// (face-up, uncontrolled or controlled by someone else).
func (b *Board) View(viewerID string) (string, error) {
	if isBlank(viewerID) {
		return "", fmt.Errorf("%w: viewer id must not be blank", boarderr.ErrBadArgument)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renderLocked(viewerID), nil
}

// renderLocked builds the rendering for viewerID. Must be called with mu
// held.
func (b *Board) renderLocked(viewerID string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d\n", b.rows, b.cols)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			pos := Position{Row: r, Col: c}
			cl := b.cells[b.index(pos)]
			switch {
			case !cl.present():
				sb.WriteString("none\n")
			case !cl.Up:
				sb.WriteString("down\n")
			case b.control[pos] == viewerID:
				fmt.Fprintf(&sb, "my %s\n", cl.Card)
			default:
				fmt.Fprintf(&sb, "up %s\n", cl.Card)
			}
		}
	}
	return sb.String()
}

// render acquires the monitor briefly to build a single viewer's
// rendering; used by watcher fan-out after release.
func (b *Board) render(viewerID string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renderLocked(viewerID)
}
