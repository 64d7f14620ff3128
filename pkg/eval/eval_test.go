package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tablutai/tablut/pkg/bitboard"
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/eval"
)

// fixedReader is a minimal eval.Reader for exact positions, without pulling in pkg/state.
type fixedReader struct {
	black, white bitboard.Bitboard
	king         board.Square
}

func (f fixedReader) Black() bitboard.Bitboard { return f.black }
func (f fixedReader) White() bitboard.Bitboard { return f.white }
func (f fixedReader) KingSquare() board.Square { return f.king }

func TestEvaluateEmptyBoardIsZero(t *testing.T) {
	r := fixedReader{king: board.NotOnBoard}
	assert.Equal(t, int32(0), eval.Evaluate(r, eval.DefaultWeights()))
}

func TestEvaluateMaterialFavorsMorePieces(t *testing.T) {
	w := eval.DefaultWeights()

	oneBlack := fixedReader{black: bitboard.Empty.Set(board.NewSquare(0, 0)), king: board.NotOnBoard}
	twoBlack := fixedReader{
		black: bitboard.Empty.Set(board.NewSquare(0, 0)).Set(board.NewSquare(0, 1)),
		king:  board.NotOnBoard,
	}

	assert.Greater(t, eval.Evaluate(twoBlack, w), eval.Evaluate(oneBlack, w), "an extra black piece should score higher for black")
}

func TestEvaluateWhitePieceWorthMoreThanBlack(t *testing.T) {
	w := eval.DefaultWeights()

	// Equal piece count, but white pieces are worth more: black's net score should drop
	// relative to a board with the same count of (weaker) black pieces on the same squares.
	oneWhite := fixedReader{white: bitboard.Empty.Set(board.NewSquare(4, 2)), king: board.NotOnBoard}
	oneBlack := fixedReader{black: bitboard.Empty.Set(board.NewSquare(4, 2)), king: board.NotOnBoard}

	assert.Less(t, eval.Evaluate(oneWhite, w), eval.Evaluate(oneBlack, w), "a lone white piece should cost black more than a lone black piece gains it")
}

func TestEvaluateKingNearCornerBeatsKingAtCenter(t *testing.T) {
	w := eval.DefaultWeights()

	kingAtCenter := fixedReader{king: board.Center}
	kingNearCorner := fixedReader{king: board.NewSquare(1, 0)}

	// The evaluator returns a black-perspective score; white's king getting closer to a
	// corner is bad for black, so the score should fall.
	assert.Less(t, eval.Evaluate(kingNearCorner, w), eval.Evaluate(kingAtCenter, w))
}

func TestEvaluateZeroWeightsAreIdentity(t *testing.T) {
	var w eval.Weights
	r := fixedReader{
		black: bitboard.Empty.Set(board.NewSquare(0, 0)),
		white: bitboard.Empty.Set(board.NewSquare(4, 2)),
		king:  board.Center,
	}
	assert.Equal(t, int32(0), eval.Evaluate(r, w))
}
