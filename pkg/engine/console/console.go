// Package console implements a line-based debug driver for the engine: it holds a
// live position, prints it as a 9x9 grid, accepts moves in algebraic notation, and can
// ask the engine to choose and play its own move.
package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/engine"
	"github.com/tablutai/tablut/pkg/eval"
	"github.com/tablutai/tablut/pkg/state"
)

const ProtocolName = "console"

// Driver reads line commands from in and writes responses to its output channel until
// closed or "quit" is received.
type Driver struct {
	iox.AsyncCloser

	e  *engine.Engine
	zt *board.ZobristTable

	pos *state.State
	out chan<- string
}

// NewDriver starts a console session against e, beginning at the standard opening.
func NewDriver(ctx context.Context, e *engine.Engine, zt *board.ZobristTable, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		zt:          zt,
		out:         out,
	}
	d.reset()
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) reset() {
	pos, err := state.NewFromAdapter(d.zt, eval.DefaultWeights(), standardOpening{})
	if err != nil {
		panic(err) // the standard opening is a fixed, known-valid position
	}
	d.pos = pos
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")
	d.out <- fmt.Sprintf("engine %v", d.e.Name())
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}
			cmd, args := strings.ToLower(parts[0]), parts[1:]

			switch cmd {
			case "reset", "r":
				d.reset()
				d.printBoard()

			case "print", "p":
				d.printBoard()

			case "go", "g":
				d.chooseAndPlay(ctx)

			case "quit", "exit", "q":
				return

			case "":
				// ignore empty command

			default:
				// Assume "<from> <to>" algebraic move, e.g. "e2 e5".
				if len(args) != 1 {
					d.out <- fmt.Sprintf("invalid command: %v", line)
					break
				}
				if err := d.playMove(cmd, args[0]); err != nil {
					d.out <- fmt.Sprintf("invalid move: %v", err)
					break
				}
				d.printBoard()
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) playMove(fromStr, toStr string) error {
	from, err := board.ParseSquare(fromStr)
	if err != nil {
		return err
	}
	to, err := board.ParseSquare(toStr)
	if err != nil {
		return err
	}
	want := board.NewMove(from, to)

	var buf [state.MaxLegalMoves]board.Move
	n := d.pos.LegalMoves(buf[:])
	for i := 0; i < n; i++ {
		if buf[i] == want {
			d.pos.MakeMove(buf[i])
			return nil
		}
	}
	return fmt.Errorf("%v%v is not legal", fromStr, toStr)
}

func (d *Driver) chooseAndPlay(ctx context.Context) {
	if d.pos.IsTerminal() {
		d.out <- fmt.Sprintf("game over: %v", d.pos.Result())
		return
	}

	move, err := d.e.ChooseMove(ctx, adapter{d.pos})
	if err != nil {
		d.out <- fmt.Sprintf("search failed: %v", err)
		return
	}

	from := board.NewSquare(move.FromRow, move.FromCol)
	to := board.NewSquare(move.ToRow, move.ToCol)
	want := board.NewMove(from, to)

	var buf [state.MaxLegalMoves]board.Move
	n := d.pos.LegalMoves(buf[:])
	for i := 0; i < n; i++ {
		if buf[i] == want {
			d.pos.MakeMove(buf[i])
			d.out <- fmt.Sprintf("bestmove %v", move)
			d.printBoard()
			return
		}
	}
	d.out <- fmt.Sprintf("engine chose illegal move %v", move)
}

func (d *Driver) printBoard() {
	d.out <- ""
	for row := board.BoardSize - 1; row >= 0; row-- {
		var sb strings.Builder
		for col := 0; col < board.BoardSize; col++ {
			sq := board.NewSquare(row, col)
			switch {
			case d.pos.KingSquare() == sq:
				sb.WriteString(" K")
			case d.pos.Black().Get(sq):
				sb.WriteString(" b")
			case d.pos.White().Get(sq):
				sb.WriteString(" w")
			default:
				sb.WriteString(" .")
			}
		}
		d.out <- sb.String()
	}
	d.out <- fmt.Sprintf("turn: %v (%d), hash: 0x%x, result: %v", d.pos.Turn(), d.pos.TurnNumber(), d.pos.Hash(), d.pos.Result())
	d.out <- ""
}

// adapter exposes a live *state.State as a state.Adapter, so the console can hand its
// in-memory game to the engine the same way a real host would.
type adapter struct{ s *state.State }

func (a adapter) PieceAt(col, row int) state.Content {
	sq := board.NewSquare(row, col)
	switch {
	case a.s.KingSquare() == sq:
		return state.KingContent
	case a.s.Black().Get(sq):
		return state.BlackContent
	case a.s.White().Get(sq):
		return state.WhiteContent
	default:
		return state.Empty
	}
}

func (a adapter) TurnNumber() int         { return a.s.TurnNumber() }
func (a adapter) TurnPlayer() board.Color { return a.s.Turn() }

// standardOpening mirrors cmd/perft's fixed canonical opening.
type standardOpening struct{}

func (standardOpening) PieceAt(col, row int) state.Content {
	switch {
	case col == 4 && row == 4:
		return state.KingContent
	case isStart(blackSquares, col, row):
		return state.BlackContent
	case isStart(whiteSquares, col, row):
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

func isStart(squares [][2]int, col, row int) bool {
	for _, sq := range squares {
		if sq[0] == col && sq[1] == row {
			return true
		}
	}
	return false
}
