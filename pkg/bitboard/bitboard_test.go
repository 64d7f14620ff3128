package bitboard_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tablutai/tablut/pkg/bitboard"
)

func TestBitboard(t *testing.T) {
	t.Run("set/get/clear", func(t *testing.T) {
		var b bitboard.Bitboard
		for sq := bitboard.Square(0); sq < bitboard.NumSquares; sq++ {
			assert.False(t, b.Get(sq))
		}

		b = b.Set(40).Set(0).Set(80)
		assert.True(t, b.Get(40))
		assert.True(t, b.Get(0))
		assert.True(t, b.Get(80))
		assert.Equal(t, 3, b.PopCount())

		b = b.Clear(40)
		assert.False(t, b.Get(40))
		assert.Equal(t, 2, b.PopCount())
	})

	t.Run("popcount and and/or/xor/andnot identity", func(t *testing.T) {
		r := rand.New(rand.NewSource(1))
		randomBoard := func() bitboard.Bitboard {
			var b bitboard.Bitboard
			for sq := bitboard.Square(0); sq < bitboard.NumSquares; sq++ {
				if r.Intn(3) == 0 {
					b = b.Set(sq)
				}
			}
			return b
		}

		for i := 0; i < 100; i++ {
			a, b := randomBoard(), randomBoard()

			assert.Equal(t, a.PopCount(), bitboard.AndCount(a, b)+bitboard.AndNotCount(a, b))
			assert.Equal(t, bitboard.AndCount(a, b), a.And(b).PopCount())
			assert.Equal(t, bitboard.AndNotCount(a, b), a.AndNot(b).PopCount())
			assert.Equal(t, bitboard.OrCount(a, b), a.Or(b).PopCount())
			assert.Equal(t, bitboard.XorCount(a, b), a.Xor(b).PopCount())
		}
	})

	t.Run("to neighbors of single square", func(t *testing.T) {
		tests := []struct {
			sq        bitboard.Square
			neighbors []bitboard.Square
		}{
			{bitboard.NewSquare(4, 4), []bitboard.Square{
				bitboard.NewSquare(3, 4), bitboard.NewSquare(5, 4), bitboard.NewSquare(4, 3), bitboard.NewSquare(4, 5),
			}},
			{bitboard.NewSquare(0, 0), []bitboard.Square{
				bitboard.NewSquare(0, 1), bitboard.NewSquare(1, 0),
			}},
			{bitboard.NewSquare(0, 8), []bitboard.Square{
				bitboard.NewSquare(0, 7), bitboard.NewSquare(1, 8),
			}},
			{bitboard.NewSquare(8, 8), []bitboard.Square{
				bitboard.NewSquare(8, 7), bitboard.NewSquare(7, 8),
			}},
		}

		for _, tt := range tests {
			got := bitboard.Of(tt.sq).ToNeighbors()
			assert.Equal(t, len(tt.neighbors), got.PopCount())
			for _, n := range tt.neighbors {
				assert.True(t, got.Get(n))
			}
		}
	})

	t.Run("shift does not wrap across row boundary", func(t *testing.T) {
		right := bitboard.Of(bitboard.NewSquare(3, 8)).ShiftRightOne()
		assert.True(t, right.IsEmpty())

		left := bitboard.Of(bitboard.NewSquare(3, 0)).ShiftLeftOne()
		assert.True(t, left.IsEmpty())

		up := bitboard.Of(bitboard.NewSquare(0, 4)).ShiftUpOne()
		assert.True(t, up.IsEmpty())

		down := bitboard.Of(bitboard.NewSquare(8, 4)).ShiftDownOne()
		assert.True(t, down.IsEmpty())
	})

	t.Run("transforms are involutive or paired with their stated inverse", func(t *testing.T) {
		full := bitboard.Of(bitboard.NewSquare(1, 2), bitboard.NewSquare(7, 3), bitboard.NewSquare(4, 4))

		for code := bitboard.Identity; code <= bitboard.MirrorAntiDiagonal; code++ {
			transformed := full.ApplyTransform(code)
			restored := transformed.UndoTransform(code)
			assert.Equal(t, full, restored, "code=%v", code)
		}
	})

	t.Run("not masks unused bits", func(t *testing.T) {
		b := bitboard.Of(0).Not()
		assert.Equal(t, bitboard.NumSquares-1, b.PopCount())
	})

	t.Run("compare total orders", func(t *testing.T) {
		a := bitboard.Of(0)
		b := bitboard.Of(80)
		assert.Equal(t, -1, bitboard.Compare(a, b))
		assert.Equal(t, 1, bitboard.Compare(b, a))
		assert.Equal(t, 0, bitboard.Compare(a, a))
	})
}
