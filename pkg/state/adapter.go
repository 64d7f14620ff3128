package state

import (
	"fmt"

	"github.com/tablutai/tablut/pkg/board"
)

// Content is what a host adapter reports for a single square.
type Content uint8

const (
	Empty Content = iota
	BlackContent
	WhiteContent
	KingContent
)

// Adapter is the host board-reading contract: it exposes the current piece placement
// and whose turn it is. The host owns the board's history and rules outside this
// package; the adapter is read once, at NewFromAdapter, to build a State.
type Adapter interface {
	// PieceAt returns the content of the square at (col, row), both 0..8.
	PieceAt(col, row int) Content
	// TurnNumber returns the current turn/ply count.
	TurnNumber() int
	// TurnPlayer returns which side is to move.
	TurnPlayer() board.Color
}

// NewFromAdapter builds a State by reading every square from the adapter once. It
// rejects boards with piece counts outside [0,16] black / [0,8] white, or with more
// than one king.
func NewFromAdapter(zt *board.ZobristTable, weights EvaluatorWeights, a Adapter) (*State, error) {
	s := &State{
		zt:      zt,
		weights: weights,
		stack:   make([]core, board.MaxMoves+1),
	}
	s.kingSquare = board.NotOnBoard

	kings := 0
	for row := 0; row < board.BoardSize; row++ {
		for col := 0; col < board.BoardSize; col++ {
			sq := board.NewSquare(row, col)
			switch a.PieceAt(col, row) {
			case BlackContent:
				if s.blackCount >= len(s.blackList) {
					return nil, fmt.Errorf("state: too many black pieces")
				}
				s.black = s.black.Set(sq)
				s.blackList[s.blackCount] = sq
				s.blackCount++
			case WhiteContent:
				if s.whiteCount >= len(s.whiteList) {
					return nil, fmt.Errorf("state: too many white pieces")
				}
				s.white = s.white.Set(sq)
				s.whiteList[s.whiteCount] = sq
				s.whiteCount++
			case KingContent:
				kings++
				if kings > 1 {
					return nil, fmt.Errorf("state: more than one king")
				}
				s.kingSquare = sq
			}
		}
	}

	s.turn = a.TurnPlayer()
	s.turnNumber = a.TurnNumber()

	if kings == 0 {
		s.result = board.BlackWins
	} else if s.turnNumber >= board.MaxMoves {
		s.result = board.Draw
	}

	s.hash = s.computeHash()
	return s, nil
}

func (s *State) computeHash() board.ZobristHash {
	var h board.ZobristHash
	for i := 0; i < s.blackCount; i++ {
		h ^= s.zt.PieceKey(board.BlackSoldier, s.blackList[i])
	}
	for i := 0; i < s.whiteCount; i++ {
		h ^= s.zt.PieceKey(board.WhiteSoldier, s.whiteList[i])
	}
	if s.kingSquare != board.NotOnBoard {
		h ^= s.zt.PieceKey(board.KingPiece, s.kingSquare)
	}
	if s.turn == board.White {
		h ^= s.zt.TurnKey()
	}
	return h
}
