package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/search"
)

func move(fromCol, fromRow, toCol, toRow int) board.Move {
	return board.NewMove(board.NewSquare(fromRow, fromCol), board.NewSquare(toRow, toCol))
}

func TestKillerAddAndContains(t *testing.T) {
	kt := search.NewKillerTable()
	m := move(0, 0, 0, 3)

	assert.False(t, kt.Contains(2, m))
	kt.Add(2, m)
	assert.True(t, kt.Contains(2, m))
}

func TestKillerAddIsIdempotent(t *testing.T) {
	kt := search.NewKillerTable()
	m := move(0, 0, 0, 3)

	kt.Add(5, m)
	kt.Add(5, m)
	kt.Add(5, m)
	assert.True(t, kt.Contains(5, m))
}

func TestKillerCapacityGrowsWithPly(t *testing.T) {
	// Ply 0's capacity is the base (6); a far deeper ply allows more distinct entries
	// before the ring starts overwriting.
	kt := search.NewKillerTable()
	for i := 0; i < 6; i++ {
		kt.Add(0, move(i, 0, i, 1))
	}
	// The 6 base slots are full; a 7th distinct move overwrites the oldest (FIFO).
	first := move(0, 0, 0, 1)
	assert.True(t, kt.Contains(0, first))
	kt.Add(0, move(6, 0, 6, 1))
	assert.False(t, kt.Contains(0, first))

	deep := kt
	for i := 0; i < 10; i++ {
		deep.Add(40, move(i, 2, i, 3))
	}
	for i := 0; i < 10; i++ {
		assert.True(t, deep.Contains(40, move(i, 2, i, 3)), "ply 40 should hold at least 10 distinct killers")
	}
}

func TestKillerClearResetsAllPlies(t *testing.T) {
	kt := search.NewKillerTable()
	m := move(0, 0, 0, 3)
	kt.Add(10, m)
	a := assert.New(t)
	a.True(kt.Contains(10, m))

	kt.Clear()
	a.False(kt.Contains(10, m))
}

func TestKillerOutOfRangePlyIsNoop(t *testing.T) {
	kt := search.NewKillerTable()
	m := move(0, 0, 0, 3)
	kt.Add(-1, m)
	kt.Add(board.MaxMoves+5, m)
	assert.False(t, kt.Contains(-1, m))
	assert.False(t, kt.Contains(board.MaxMoves+5, m))
}
