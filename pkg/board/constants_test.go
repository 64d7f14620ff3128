package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tablutai/tablut/pkg/board"
)

func TestOneCrossCardinality(t *testing.T) {
	for row := 0; row < board.BoardSize; row++ {
		for col := 0; col < board.BoardSize; col++ {
			sq := board.NewSquare(row, col)

			edges := 0
			if row == 0 || row == board.BoardSize-1 {
				edges++
			}
			if col == 0 || col == board.BoardSize-1 {
				edges++
			}
			want := 4 - edges
			got := board.OneCross[sq].PopCount()
			assert.Equal(t, want, got, "square=%v", board.FormatSquare(sq))
		}
	}
}

func TestKingOnlyAndSurroundMasks(t *testing.T) {
	assert.Equal(t, 4, board.CornersMask.PopCount())
	assert.Equal(t, 1, board.CenterMask.PopCount())
	assert.Equal(t, 5, board.KingOnlyMask.PopCount())
	assert.Equal(t, 5, board.KingSurroundMask.PopCount())

	for _, c := range board.Corners {
		assert.True(t, board.KingOnlyMask.Get(c))
	}
	assert.True(t, board.KingSurroundMask.Get(board.Center))
}

func TestLegalMovesRecord(t *testing.T) {
	t.Run("no blockers reaches board edge", func(t *testing.T) {
		rec := board.LegalMoves[4][1<<4]
		assert.Equal(t, 0, rec.Leftmost())
		assert.Equal(t, board.BoardSize-1, rec.Rightmost())
		for c := 0; c < board.BoardSize; c++ {
			if c == 4 {
				assert.False(t, rec.Mask().Has(c))
			} else {
				assert.True(t, rec.Mask().Has(c))
			}
		}
		if _, ok := rec.LeftBlocker(); ok {
			t.Fatal("expected no left blocker")
		}
	})

	t.Run("blocked on both sides", func(t *testing.T) {
		occ := uint16(1<<4 | 1<<2 | 1<<6)
		rec := board.LegalMoves[4][occ]

		assert.Equal(t, 3, rec.Leftmost())
		assert.Equal(t, 5, rec.Rightmost())

		lb, ok := rec.LeftBlocker()
		assert.True(t, ok)
		assert.Equal(t, 2, lb)

		rb, ok := rec.RightBlocker()
		assert.True(t, ok)
		assert.Equal(t, 6, rb)

		for c := 0; c < board.BoardSize; c++ {
			inRange := c == 3 || c == 4 || c == 5
			assert.Equal(t, inRange && c != 4, rec.Mask().Has(c), "col=%v", c)
		}
	})
}
