package search

import (
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/state"
)

// quiescence extends the search past the main horizon along "loud" lines only --
// captures and moves that change the king's access to a corner -- to avoid misjudging
// a position mid-exchange. Stand-pat gives every node a floor: a side never has to
// make a losing loud move it could instead decline.
func (r *searchRun) quiescence(ply, depth int, alpha, beta board.Score) (board.Score, board.Move, bool) {
	if r.expired() {
		return 0, 0, true
	}

	standPat := r.pos.Evaluate()
	if standPat >= beta || depth <= 0 || r.pos.IsTerminal() {
		return standPat, 0, false
	}
	if standPat > alpha {
		alpha = standPat
	}
	r.nodes++

	var buf [state.MaxLegalMoves]board.Move
	n := r.pos.LegalMoves(buf[:])

	var loud []candidate
	for i := 0; i < n; i++ {
		tag := r.pos.ClassifyMove(buf[i])
		if tag.IsLoud() {
			loud = append(loud, candidate{raw: buf[i], tag: tag})
		}
	}
	if len(loud) == 0 {
		return standPat, 0, false
	}
	sortDescending(loud)

	best := standPat
	var bestMove board.Move
	for _, c := range loud {
		if r.expired() {
			return 0, 0, true
		}
		r.pos.MakeMove(c.raw)
		sc, _, aborted := r.quiescence(ply+1, depth-1, -beta, -alpha)
		r.pos.UnmakeMove()
		if aborted {
			return 0, 0, true
		}
		sc = -sc
		if sc > best {
			best, bestMove = sc, c.raw
		}
		if sc > alpha {
			alpha = sc
		}
		if alpha >= beta {
			break
		}
	}
	return best, bestMove, false
}
