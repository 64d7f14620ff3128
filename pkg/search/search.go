package search

import (
	"context"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/state"
)

// quiescenceDepth bounds the capture/mobility-change-only extension below the main
// search horizon.
const quiescenceDepth = 10

// maxSearchDepth bounds the iterative-deepening driver as a hard backstop; in practice
// the deadline or a forced mate ends the loop first.
const maxSearchDepth = board.MaxMoves

// Result is a completed (or best-so-far) iteration of the search.
type Result struct {
	Depth   int
	Nodes   uint64
	Score   board.Score
	Move    board.Move
	Elapsed time.Duration
}

// Searcher runs iterative-deepening PVS against a persistent transposition table and a
// per-turn killer table. Not safe for concurrent use.
type Searcher struct {
	TT      *Table
	Killers *KillerTable

	// DepthLimit, if set, caps iterative deepening below its usual remaining-moves/
	// maxSearchDepth bound -- for analysis or fixed-ply testing. Zero value (unset)
	// means no cap.
	DepthLimit lang.Optional[uint]
}

// NewSearcher returns a Searcher backed by the given transposition table. A fresh
// killer table is created; it is cleared automatically at the start of every Run.
func NewSearcher(tt *Table) *Searcher {
	return &Searcher{TT: tt, Killers: NewKillerTable()}
}

// Run performs iterative deepening from depth 1 until deadline is reached, a forced
// mate is found, or remaining_moves is exhausted, returning the last fully completed
// iteration's result. A partial (deadline-aborted) iteration never overwrites it.
func (s *Searcher) Run(ctx context.Context, pos *state.State, deadline time.Time) Result {
	s.Killers.Clear()

	age := pos.TurnNumber()
	limit := pos.RemainingMoves()
	if limit < 1 {
		limit = 1
	}
	if limit > maxSearchDepth {
		limit = maxSearchDepth
	}
	if d, ok := s.DepthLimit.V(); ok && int(d) < limit {
		limit = int(d)
	}

	var best Result
	for depth := 1; depth <= limit; depth++ {
		start := time.Now()
		run := &searchRun{ctx: ctx, tt: s.TT, kt: s.Killers, pos: pos, age: age, deadline: deadline}

		score, move, aborted := run.pvs(0, depth, -board.WinValue-board.MaxMoves, board.WinValue+board.MaxMoves, true)
		if aborted {
			break
		}

		best = Result{Depth: depth, Nodes: run.nodes, Score: score, Move: move, Elapsed: time.Since(start)}
		logw.Debugf(ctx, "search: depth=%d nodes=%d score=%v move=%v", best.Depth, best.Nodes, best.Score, best.Move)

		if isDecisive(score) {
			break // forced win or loss found within full-width search; no point deepening
		}
	}
	return best
}

func isDecisive(score board.Score) bool {
	if score < 0 {
		score = -score
	}
	return score >= board.WinValue
}
