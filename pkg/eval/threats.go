package eval

import (
	"github.com/tablutai/tablut/pkg/bitboard"
	"github.com/tablutai/tablut/pkg/board"
)

// Threat describes an opponent piece that the side to move could capture by occupying
// a single empty square next move.
type Threat struct {
	Target board.Square // the opponent piece at risk
	Anchor board.Square // the empty square the mover would need to occupy
}

// FindThreats returns every threat the given anchor/target bitboards expose: for each
// target square with an empty orthogonal neighbor whose opposite neighbor already holds
// an attacker or a hostile anchor square, record the empty neighbor as the attacking
// square a mover could slide into to complete the sandwich.
func FindThreats(all, attackerAnchor, targets bitboard.Bitboard) []Threat {
	type delta struct{ dr, dc int }
	dirs := [...]delta{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	var ret []Threat
	for _, sq := range targets.Squares() {
		row, col := sq.Row(), sq.Col()
		for _, d := range dirs {
			nr, nc := row+d.dr, col+d.dc
			fr, fc := row-d.dr, col-d.dc
			if !inBounds(nr, nc) || !inBounds(fr, fc) {
				continue
			}
			near := board.NewSquare(nr, nc)
			far := board.NewSquare(fr, fc)
			if !all.Get(near) && attackerAnchor.Get(far) {
				ret = append(ret, Threat{Target: sq, Anchor: near})
			}
		}
	}
	return ret
}
