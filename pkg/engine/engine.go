// Package engine wraps pkg/search into the single synchronous entry point a host
// adapter calls once per turn: ChooseMove. It owns the transposition table across the
// whole game and the evaluator weights, both configured through functional options.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/eval"
	"github.com/tablutai/tablut/pkg/search"
	"github.com/tablutai/tablut/pkg/search/searchctl"
	"github.com/tablutai/tablut/pkg/state"
)

var version = build.NewVersion(0, 1, 0)

// Move is the host adapter's view of a chosen move (Section 6, external interfaces):
// board coordinates plus the side that made it. The packed 14-bit encoding search
// uses internally never crosses this boundary.
type Move struct {
	FromCol, FromRow int
	ToCol, ToRow     int
	Player           board.Color
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)->(%d,%d)", m.FromCol, m.FromRow, m.ToCol, m.ToRow)
}

// Options are engine creation options.
type Options struct {
	// TableSizeMB is the transposition table size. Zero selects searchctl.DefaultTableSizeMB.
	TableSizeMB int
	// Budget overrides the per-turn time budget. Zero selects searchctl.DefaultBudget().
	Budget searchctl.Budget
	// Weights overrides the evaluator's term weights. Zero value selects eval.DefaultWeights().
	Weights eval.Weights
	// ZobristSeed seeds the hash key table. Default zero, for reproducible runs.
	ZobristSeed int64
	// DepthLimit, if set, caps every search below its usual remaining-moves bound --
	// for analysis or fixed-ply testing. Unset means no cap.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, overrides Budget.ForTurn with a single fixed per-turn
	// duration -- for fixed-time matches. Unset means use Budget as configured.
	TimeControl lang.Optional[time.Duration]
}

// Option is an engine creation option.
type Option func(*Options)

// WithTableSizeMB sets the transposition table size in megabytes.
func WithTableSizeMB(mb int) Option {
	return func(o *Options) { o.TableSizeMB = mb }
}

// WithBudget overrides the per-turn time budget.
func WithBudget(b searchctl.Budget) Option {
	return func(o *Options) { o.Budget = b }
}

// WithWeights overrides the evaluator's term weights.
func WithWeights(w eval.Weights) Option {
	return func(o *Options) { o.Weights = w }
}

// WithZobristSeed seeds the Zobrist hash key table.
func WithZobristSeed(seed int64) Option {
	return func(o *Options) { o.ZobristSeed = seed }
}

// WithDepthLimit caps every search to at most depth plies, regardless of remaining_moves.
func WithDepthLimit(depth uint) Option {
	return func(o *Options) { o.DepthLimit = lang.Some(depth) }
}

// WithTimeControl overrides the per-turn budget with a single fixed duration, bypassing
// Budget's turn-1-vs-later distinction.
func WithTimeControl(d time.Duration) Option {
	return func(o *Options) { o.TimeControl = lang.Some(d) }
}

// Engine chooses moves for one side of a Tablut game. A single Engine persists its
// transposition table across every turn of a game; create a new Engine per game.
type Engine struct {
	zt          *board.ZobristTable
	weights     eval.Weights
	budget      searchctl.Budget
	timeControl lang.Optional[time.Duration]
	tt          *search.Table
	searcher    *search.Searcher

	mu sync.Mutex
}

// New builds an Engine. The transposition table is allocated once, up front, at its
// full configured size.
func New(ctx context.Context, opts ...Option) *Engine {
	o := Options{
		TableSizeMB: searchctl.DefaultTableSizeMB,
		Budget:      searchctl.DefaultBudget(),
		Weights:     eval.DefaultWeights(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.TableSizeMB == 0 {
		o.TableSizeMB = searchctl.DefaultTableSizeMB
	}
	if o.Budget == (searchctl.Budget{}) {
		o.Budget = searchctl.DefaultBudget()
	}
	if o.Weights == (eval.Weights{}) {
		o.Weights = eval.DefaultWeights()
	}

	tt := search.NewTable(ctx, o.TableSizeMB)
	searcher := search.NewSearcher(tt)
	searcher.DepthLimit = o.DepthLimit

	e := &Engine{
		zt:          board.NewZobristTable(o.ZobristSeed),
		weights:     o.Weights,
		budget:      o.Budget,
		timeControl: o.TimeControl,
		tt:          tt,
		searcher:    searcher,
	}

	logw.Infof(ctx, "Initialized %v: table=%v", e.Name(), tt)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("tablutai %v", version)
}

// ZobristTable returns the hash key table this engine was built with, so a caller that
// keeps its own live *state.State (e.g. a debug console) can build it with matching keys.
func (e *Engine) ZobristTable() *board.ZobristTable {
	return e.zt
}

// ChooseMove reads the position once from a, runs a time-budgeted search, and returns
// the chosen move in host board coordinates. The budget is Section 6's
// START_TURN_BUDGET_NS on turn 1, TURN_BUDGET_NS afterward, unless WithTimeControl
// pinned a fixed per-turn duration instead.
func (e *Engine) ChooseMove(ctx context.Context, a state.Adapter) (Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, err := state.NewFromAdapter(e.zt, e.weights, a)
	if err != nil {
		return Move{}, fmt.Errorf("engine: invalid board: %w", err)
	}
	if pos.IsTerminal() {
		return Move{}, fmt.Errorf("engine: game already over: %v", pos.Result())
	}

	budget := e.budget.ForTurn(pos.TurnNumber())
	if d, ok := e.timeControl.V(); ok {
		budget = d
	}
	deadline := time.Now().Add(budget)

	logw.Debugf(ctx, "ChooseMove: turn=%d player=%v budget=%v", pos.TurnNumber(), pos.Turn(), budget)

	result := e.searcher.Run(ctx, pos, deadline)
	if result.Move == 0 {
		return Move{}, fmt.Errorf("engine: search returned no move")
	}

	from, to := result.Move.From(), result.Move.To()
	move := Move{
		FromCol: from.Col(), FromRow: from.Row(),
		ToCol: to.Col(), ToRow: to.Row(),
		Player: pos.Turn(),
	}
	logw.Infof(ctx, "ChooseMove: %v depth=%d nodes=%d score=%v", move, result.Depth, result.Nodes, result.Score)
	return move, nil
}
