package search

import (
	"context"
	"sort"
	"time"

	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/state"
)

// searchRun holds the mutable state of a single iterative-deepening iteration: the
// position being searched in place (via make_move/unmake_move), the shared
// transposition and killer tables, and the node counter.
type searchRun struct {
	ctx      context.Context
	tt       *Table
	kt       *KillerTable
	pos      *state.State
	age      int
	deadline time.Time
	nodes    uint64
}

// expired reports whether this iteration must unwind now, either because the deadline
// has passed or because ctx itself was cancelled -- checked at every node, the same way
// the teacher's alphabeta.go and quiescence.go check contextx.IsCancelled(ctx).
func (r *searchRun) expired() bool {
	return !time.Now().Before(r.deadline) || contextx.IsCancelled(r.ctx)
}

// candidate is a legal move together with its classification tag, used for ordering
// and for the critical/regular partition.
type candidate struct {
	raw board.Move
	tag board.Move
}

func sortDescending(c []candidate) {
	sort.Slice(c, func(i, j int) bool { return c[i].tag > c[j].tag })
}

// isCriticalTag reports whether tag carries any classification bit that puts its move
// in the critical search bucket: a capture, a king-mobility change, a killer hit, or
// the internal-iterative-deepening pick.
func isCriticalTag(tag board.Move) bool {
	return tag&(board.CaptureMask|board.TagBlocksKingExit|board.TagKingSeesCorner|board.TagKiller|board.TagIID) != 0
}

func findMove(buf []board.Move, raw board.Move) (board.Move, bool) {
	raw = raw.Raw14()
	for _, m := range buf {
		if m.Raw14() == raw {
			return m, true
		}
	}
	return 0, false
}

// lossScore is returned for the side to move when it has no legal moves at a
// non-terminal state -- not observed from the standard opening within MAX_MOVES, but
// handled the same way a captured king or a failed escape would be.
func (r *searchRun) lossScore() board.Score {
	return -(board.WinValue + board.Score(r.pos.RemainingMoves()))
}

// pvs implements principal variation search with alpha-beta pruning, a transposition
// table probe/store, internal iterative deepening, and killer-move ordering. Returns
// the score and best move for the side to move, or aborted=true if the deadline was
// hit -- in which case score and move must be ignored and the position's make/unmake
// stack is already balanced.
func (r *searchRun) pvs(ply, depth int, alpha, beta board.Score, isPV bool) (board.Score, board.Move, bool) {
	if depth <= 0 || r.pos.IsTerminal() {
		return r.quiescence(ply, quiescenceDepth, alpha, beta)
	}

	alphaOrig := alpha
	hash := r.pos.Hash()

	var tableMove board.Move
	if nt, d, score, mv, ok := r.tt.Get(hash); ok {
		tableMove = mv
		if d >= depth {
			switch nt {
			case PVNode:
				return score, mv, false
			case CutNode:
				if score > alpha {
					alpha = score
				}
			case AllNode:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score, mv, false
			}
		}
	}

	if r.expired() {
		return 0, 0, true
	}
	r.nodes++

	var buf [state.MaxLegalMoves]board.Move
	n := r.pos.LegalMoves(buf[:])
	if n == 0 {
		return r.lossScore(), 0, false
	}
	legal := buf[:n]

	var bestMove board.Move
	bestScore := -board.WinValue - board.MaxMoves
	hasMove := false

	// Step 3: search the table move first, if it is still legal.
	if tableMove != 0 {
		if mv, ok := findMove(legal, tableMove); ok {
			if r.expired() {
				return 0, 0, true
			}
			r.pos.MakeMove(mv)
			// The table move is always searched in full PV style, regardless of the
			// window this call itself was entered with.
			sc, _, aborted := r.pvs(ply+1, depth-1, -beta, -alpha, true)
			r.pos.UnmakeMove()
			if aborted {
				return 0, 0, true
			}
			sc = -sc
			hasMove = true
			if sc > bestScore {
				bestScore, bestMove = sc, mv
			}
			if sc > alpha {
				alpha = sc
			}
			if alpha >= beta {
				if mv.IsQuiet() {
					r.kt.Add(ply, mv)
				}
				r.tt.Put(hash, CutNode, depth, alpha, bestMove, r.age)
				return alpha, bestMove, false
			}
		}
	}

	// Step 5a: internal iterative deepening, when no table move is available to order by.
	var iidMove board.Move
	if isPV && tableMove == 0 && depth > 3 {
		for d := 1; d <= depth-2; d++ {
			if r.expired() {
				return 0, 0, true
			}
			_, mv, aborted := r.pvs(ply, d, alpha, beta, true)
			if aborted {
				return 0, 0, true
			}
			if mv != 0 {
				iidMove = mv.Raw14()
			}
		}
	}

	// Steps 4-5: classify, tag and partition the remaining moves.
	var critical, regular []candidate
	for _, mv := range legal {
		if tableMove != 0 && mv.Raw14() == tableMove.Raw14() {
			continue
		}
		tag := r.pos.ClassifyMove(mv)
		if r.kt.Contains(ply, mv) {
			tag |= board.TagKiller
		}
		if iidMove != 0 && mv.Raw14() == iidMove {
			tag |= board.TagIID
		}
		c := candidate{raw: mv, tag: tag}
		if isCriticalTag(tag) {
			critical = append(critical, c)
		} else {
			regular = append(regular, c)
		}
	}
	sortDescending(critical)
	sortDescending(regular)

	// Step 6: critical moves, searched in tag order with a full window.
	for _, c := range critical {
		if r.expired() {
			return 0, 0, true
		}
		r.pos.MakeMove(c.raw)
		sc, _, aborted := r.pvs(ply+1, depth-1, -beta, -alpha, false)
		r.pos.UnmakeMove()
		if aborted {
			return 0, 0, true
		}
		sc = -sc
		hasMove = true
		if sc > bestScore {
			bestScore, bestMove = sc, c.raw
		}
		if sc > alpha {
			alpha = sc
		}
		if alpha >= beta {
			if c.raw.IsQuiet() {
				r.kt.Add(ply, c.raw)
			}
			r.tt.Put(hash, CutNode, depth, alpha, bestMove, r.age)
			return alpha, bestMove, false
		}
	}

	// Step 7: regular moves, a null-window probe with re-search on fail-high.
	for _, c := range regular {
		if r.expired() {
			return 0, 0, true
		}
		r.pos.MakeMove(c.raw)

		reduced := depth - 2
		if reduced < 1 {
			reduced = 1
		}
		sc, _, aborted := r.pvs(ply+1, reduced, -(alpha + 1), -alpha, false)
		if aborted {
			r.pos.UnmakeMove()
			return 0, 0, true
		}
		sc = -sc

		if sc > alpha && sc < beta && depth > 1 {
			sc2, _, aborted2 := r.pvs(ply+1, depth-1, -beta, -alpha, false)
			if aborted2 {
				r.pos.UnmakeMove()
				return 0, 0, true
			}
			sc = -sc2
		}
		r.pos.UnmakeMove()

		hasMove = true
		if sc > bestScore {
			bestScore, bestMove = sc, c.raw
		}
		if sc > alpha {
			alpha = sc
		}
		if alpha >= beta {
			if c.raw.IsQuiet() {
				r.kt.Add(ply, c.raw)
			}
			r.tt.Put(hash, CutNode, depth, alpha, bestMove, r.age)
			return alpha, bestMove, false
		}
	}

	if !hasMove {
		return r.lossScore(), 0, false
	}

	// Step 9: store the result -- PV if alpha improved strictly within the window, ALL
	// if nothing ever beat the original alpha (CUT was already stored and returned above).
	nt := AllNode
	if bestScore > alphaOrig {
		nt = PVNode
	}
	r.tt.Put(hash, nt, depth, bestScore, bestMove, r.age)
	return bestScore, bestMove, false
}
