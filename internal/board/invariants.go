package board

import "fmt"

// CheckInvariants verifies representation invariants I1–I6 against the
// board's current state. It is exported for property-based tests, not
// called automatically by mutating operations — the design specifies the
// invariants as a correctness property to test across interleavings, not
// as a runtime assertion on every call.
func (b *Board) CheckInvariants() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rows <= 0 || b.cols <= 0 { // I1
		return fmt.Errorf("I1: non-positive dimensions %dx%d", b.rows, b.cols)
	}

	for tok, positions := range b.tokenGroupsLocked() {
		if !ValidateToken(tok) { // I2
			return fmt.Errorf("I2: invalid token %q at %v", tok, positions)
		}
	}
	for pos, cl := range b.cellsByPosLocked() {
		if !cl.present() {
			if cl.Up { // I2
				return fmt.Errorf("I2: removed cell %v is face-up", pos)
			}
			if _, controlled := b.control[pos]; controlled { // I2
				return fmt.Errorf("I2: removed cell %v is controlled", pos)
			}
		}
	}

	for pos, pid := range b.control {
		if !b.inBounds(pos) { // I3
			return fmt.Errorf("I3: control entry %v out of bounds", pos)
		}
		cl := b.cells[b.index(pos)]
		if !cl.present() || !cl.Up { // I3
			return fmt.Errorf("I3: control entry %v not present/face-up", pos)
		}
		p, ok := b.players[pid]
		if !ok { // I3
			return fmt.Errorf("I3: control entry %v references unknown player %q", pos, pid)
		}
		refFirst := p.first != nil && *p.first == pos
		refSecond := p.second != nil && *p.second == pos
		if !refFirst && !refSecond { // I3
			return fmt.Errorf("I3: control entry %v not referenced by player %q's state", pos, pid)
		}
	}

	for pid, p := range b.players {
		if p.second != nil && p.first == nil { // I4
			return fmt.Errorf("I4: player %q has second without first", pid)
		}
		if p.first != nil && p.second == nil { // I5
			if b.control[*p.first] != pid {
				return fmt.Errorf("I5: player %q does not control its first position %v", pid, *p.first)
			}
		}
		if p.second != nil {
			if b.control[*p.second] == pid { // I6
				if b.control[*p.first] != pid {
					return fmt.Errorf("I6: player %q controls second %v but not first %v", pid, *p.second, *p.first)
				}
			}
		}
	}

	return nil
}

func (b *Board) tokenGroupsLocked() map[string][]Position {
	groups := make(map[string][]Position)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			pos := Position{Row: r, Col: c}
			cl := b.cells[b.index(pos)]
			if cl.present() {
				groups[cl.Card] = append(groups[cl.Card], pos)
			}
		}
	}
	return groups
}

func (b *Board) cellsByPosLocked() map[Position]cell {
	m := make(map[Position]cell, len(b.cells))
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			pos := Position{Row: r, Col: c}
			m[pos] = b.cells[b.index(pos)]
		}
	}
	return m
}
