package search

import (
	"math"

	"github.com/tablutai/tablut/pkg/board"
)

const (
	killerBaseK   = 6
	killerMaxK    = 24
	killerGrowth  = 0.265
	killerMaxPly  = board.MaxMoves + 1
)

// killerCapacity returns how many distinct killer moves are tracked at ply: a slowly
// growing budget so shallow plies (searched exhaustively, reused often) get fewer
// slots than deep ones where a quiet cutoff is rarer and worth remembering longer.
func killerCapacity(ply int) int {
	v := killerBaseK + int(math.Exp(killerGrowth*float64(ply))) - 1
	if v > killerMaxK {
		return killerMaxK
	}
	if v < killerBaseK {
		return killerBaseK
	}
	return v
}

type plyKillers struct {
	moves [killerMaxK]board.Move
	n     int
	next  int
}

// KillerTable records, per search ply, a small set of quiet moves that recently
// produced a beta cutoff elsewhere in the tree -- useful move-ordering hints tried
// before the remaining quiet moves. Cleared at the start of every turn's search.
type KillerTable struct {
	plies [killerMaxPly]plyKillers
}

// NewKillerTable returns an empty killer table.
func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

// Add records m as a killer at ply, unless already present. Once the ply's capacity is
// full, the oldest entry is overwritten (FIFO ring).
func (k *KillerTable) Add(ply int, m board.Move) {
	if ply < 0 || ply >= killerMaxPly {
		return
	}
	raw := m.Raw14()
	p := &k.plies[ply]
	for i := 0; i < p.n; i++ {
		if p.moves[i] == raw {
			return
		}
	}

	cap := killerCapacity(ply)
	if p.n < cap {
		p.moves[p.n] = raw
		p.n++
		return
	}
	p.moves[p.next] = raw
	p.next = (p.next + 1) % cap
}

// Contains reports whether m is a recorded killer at ply.
func (k *KillerTable) Contains(ply int, m board.Move) bool {
	if ply < 0 || ply >= killerMaxPly {
		return false
	}
	raw := m.Raw14()
	p := &k.plies[ply]
	for i := 0; i < p.n; i++ {
		if p.moves[i] == raw {
			return true
		}
	}
	return false
}

// Clear resets every ply's killer set. Called once at the start of each turn's search.
func (k *KillerTable) Clear() {
	for i := range k.plies {
		k.plies[i] = plyKillers{}
	}
}
