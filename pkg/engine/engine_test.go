package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/engine"
	"github.com/tablutai/tablut/pkg/state"
)

// fixedBoard is a minimal state.Adapter backed by an explicit placement map, for
// constructing exact scenarios without a full game-rules host.
type fixedBoard struct {
	black, white map[[2]int]bool
	king         [2]int
	hasKing      bool
	turnNumber   int
	turnPlayer   board.Color
}

func newFixedBoard(turn board.Color, turnNumber int) *fixedBoard {
	return &fixedBoard{black: map[[2]int]bool{}, white: map[[2]int]bool{}, turnNumber: turnNumber, turnPlayer: turn}
}

func (f *fixedBoard) setBlack(col, row int) *fixedBoard { f.black[[2]int{col, row}] = true; return f }
func (f *fixedBoard) setWhite(col, row int) *fixedBoard { f.white[[2]int{col, row}] = true; return f }
func (f *fixedBoard) setKing(col, row int) *fixedBoard  { f.king = [2]int{col, row}; f.hasKing = true; return f }

func (f *fixedBoard) PieceAt(col, row int) state.Content {
	if f.hasKing && f.king == [2]int{col, row} {
		return state.KingContent
	}
	if f.black[[2]int{col, row}] {
		return state.BlackContent
	}
	if f.white[[2]int{col, row}] {
		return state.WhiteContent
	}
	return state.Empty
}

func (f *fixedBoard) TurnNumber() int         { return f.turnNumber }
func (f *fixedBoard) TurnPlayer() board.Color { return f.turnPlayer }

func forcedEscapeFixture() *fixedBoard {
	f := newFixedBoard(board.White, 10)
	f.setKing(1, 0) // one step from corner (0,0), nothing blocking the slide
	return f
}

// TestChooseMoveFindsForcedEscape checks the facade end-to-end: New, then a single
// ChooseMove call against a forced-win position.
func TestChooseMoveFindsForcedEscape(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithTableSizeMB(1))

	move, err := e.ChooseMove(ctx, forcedEscapeFixture())
	require.NoError(t, err)
	assert.Equal(t, engine.Move{FromCol: 1, FromRow: 0, ToCol: 0, ToRow: 0, Player: board.White}, move)
}

// TestWithDepthLimitCapsChosenSearch confirms the option reaches the underlying
// Searcher: a very small DepthLimit still finds the one-move escape, rather than
// erroring or timing out.
func TestWithDepthLimitCapsChosenSearch(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithTableSizeMB(1), engine.WithDepthLimit(1))

	move, err := e.ChooseMove(ctx, forcedEscapeFixture())
	require.NoError(t, err)
	assert.Equal(t, board.NewSquare(0, 0), board.NewSquare(move.ToCol, move.ToRow))
}

// TestWithTimeControlOverridesBudget confirms a fixed per-turn duration is honored
// instead of the turn-based Budget.ForTurn computation: ChooseMove still returns
// within a small multiple of the configured duration.
func TestWithTimeControlOverridesBudget(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithTableSizeMB(1), engine.WithTimeControl(20*time.Millisecond))

	start := time.Now()
	_, err := e.ChooseMove(ctx, forcedEscapeFixture())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, 2*time.Second, "WithTimeControl must bound the search, not the default per-turn budget")
}

// TestChooseMoveRejectsTerminalPosition checks the already-decided-game guard fires
// before a search is even attempted: no king on the board means black has already won.
func TestChooseMoveRejectsTerminalPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, engine.WithTableSizeMB(1))

	f := newFixedBoard(board.Black, 10)
	f.setBlack(0, 4) // king already captured: no KingContent square anywhere
	_, err := e.ChooseMove(ctx, f)
	assert.Error(t, err)
}
