// perft is a move-generation debugging tool: it counts leaf nodes reached by full-width
// search to a fixed depth from the standard Tablut opening, as a regression check on
// LegalMoves/MakeMove/UnmakeMove. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/seekerror/logw"
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/eval"
	"github.com/tablutai/tablut/pkg/state"
)

var (
	depth  = flag.Int("depth", 4, "Search depth")
	divide = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	zt := board.NewZobristTable(0)
	s, err := state.NewFromAdapter(zt, eval.DefaultWeights(), standardOpening{})
	if err != nil {
		logw.Exitf(ctx, "Invalid initial position: %v", err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(s, i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v\n", i, nodes, duration.Microseconds())
	}
}

func perft(s *state.State, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var buf [state.MaxLegalMoves]board.Move
	n := s.LegalMoves(buf[:])

	var nodes int64
	for i := 0; i < n; i++ {
		m := buf[i]
		s.MakeMove(m)
		count := perft(s, depth-1, false)
		s.UnmakeMove()

		if d {
			fmt.Printf("%v: %v\n", m, count)
		}
		nodes += count
	}
	return nodes
}

// standardOpening is the canonical 9x9 Tablut setup: 16 black attackers on the four
// edge cross-arms, 8 white defenders on the center cross-arms, the king on the throne.
type standardOpening struct{}

func (standardOpening) PieceAt(col, row int) state.Content {
	switch {
	case col == 4 && row == 4:
		return state.KingContent
	case isBlackStart(col, row):
		return state.BlackContent
	case isWhiteStart(col, row):
		return state.WhiteContent
	default:
		return state.Empty
	}
}

func (standardOpening) TurnNumber() int         { return 1 }
func (standardOpening) TurnPlayer() board.Color { return board.Black }

var blackSquares = [][2]int{
	{3, 0}, {4, 0}, {5, 0}, {4, 1},
	{0, 3}, {0, 4}, {0, 5}, {1, 4},
	{8, 3}, {8, 4}, {8, 5}, {7, 4},
	{3, 8}, {4, 8}, {5, 8}, {4, 7},
}

var whiteSquares = [][2]int{
	{2, 4}, {3, 4}, {5, 4}, {6, 4},
	{4, 2}, {4, 3}, {4, 5}, {4, 6},
}

func isBlackStart(col, row int) bool {
	for _, sq := range blackSquares {
		if sq[0] == col && sq[1] == row {
			return true
		}
	}
	return false
}

func isWhiteStart(col, row int) bool {
	for _, sq := range whiteSquares {
		if sq[0] == col && sq[1] == row {
			return true
		}
	}
	return false
}
