// Package state implements the Tablut position: incremental make/unmake, capture
// resolution, Zobrist hashing, legal move generation via the precomputed per-row slide
// tables in pkg/board, and the static evaluator.
package state

import (
	"github.com/tablutai/tablut/pkg/bitboard"
	"github.com/tablutai/tablut/pkg/board"
	"github.com/tablutai/tablut/pkg/eval"
)

// MaxLegalMoves bounds the scratch buffer callers must supply to LegalMoves.
const MaxLegalMoves = 183

// EvaluatorWeights is the evaluator weight set a State scores positions with. An alias
// of eval.Weights so callers outside pkg/eval don't need to import it directly.
type EvaluatorWeights = eval.Weights

// core holds every field that make_move mutates and unmake_move restores. It is kept
// separate from State's immutable fields (zobrist table, weights, snapshot stack) so a
// snapshot is a single cheap struct copy.
type core struct {
	black      bitboard.Bitboard
	white      bitboard.Bitboard
	kingSquare board.Square

	blackList  [16]board.Square
	blackCount int
	whiteList  [8]board.Square
	whiteCount int

	hash       board.ZobristHash
	turn       board.Color
	turnNumber int
	result     board.Result
	lastMove   board.Move
}

// State is a Tablut position plus the fixed-depth snapshot stack that backs
// MakeMove/UnmakeMove. Not safe for concurrent use; callers searching must not share a
// State across goroutines.
type State struct {
	zt      *board.ZobristTable
	weights EvaluatorWeights

	core
	stack []core
	sp    int
}

// Turn returns the side to move.
func (s *State) Turn() board.Color { return s.turn }

// TurnNumber returns the current ply count.
func (s *State) TurnNumber() int { return s.turnNumber }

// RemainingMoves returns the number of plies left before the MAX_MOVES draw.
func (s *State) RemainingMoves() int {
	rem := board.MaxMoves - s.turnNumber
	if rem < 0 {
		return 0
	}
	return rem
}

// Hash returns the current Zobrist hash.
func (s *State) Hash() board.ZobristHash { return s.hash }

// Black returns the black piece bitboard.
func (s *State) Black() bitboard.Bitboard { return s.black }

// White returns the white (non-king) piece bitboard.
func (s *State) White() bitboard.Bitboard { return s.white }

// KingSquare returns the king's square, or board.NotOnBoard if captured.
func (s *State) KingSquare() board.Square { return s.kingSquare }

// LastMove returns the raw 14-bit (from,to) of the move that produced this state.
func (s *State) LastMove() board.Move { return s.lastMove }

// Result returns the decided outcome, or board.Undecided.
func (s *State) Result() board.Result { return s.result }

// IsTerminal reports whether the game is over: a side has won, or MAX_MOVES is reached.
func (s *State) IsTerminal() bool {
	return s.result != board.Undecided || s.turnNumber >= board.MaxMoves
}

func (s *State) kingBitboard() bitboard.Bitboard {
	if s.kingSquare == board.NotOnBoard {
		return bitboard.Empty
	}
	return bitboard.Empty.Set(s.kingSquare)
}

func (s *State) allPieces() bitboard.Bitboard {
	return s.black.Or(s.white).Or(s.kingBitboard())
}

// LegalMoves writes every legal move for the side to move into out (which must have
// capacity MaxLegalMoves) and returns the count written.
func (s *State) LegalMoves(out []board.Move) int {
	all := s.allPieces()
	n := 0
	if s.turn == board.Black {
		for i := 0; i < s.blackCount; i++ {
			n = s.appendMovesFor(s.blackList[i], false, all, out, n)
		}
		return n
	}

	for i := 0; i < s.whiteCount; i++ {
		n = s.appendMovesFor(s.whiteList[i], false, all, out, n)
	}
	if s.kingSquare != board.NotOnBoard {
		n = s.appendMovesFor(s.kingSquare, true, all, out, n)
	}
	return n
}

func (s *State) appendMovesFor(from board.Square, isKing bool, all bitboard.Bitboard, out []board.Move, n int) int {
	dest := board.HorizontalDestinations(all, from).Or(board.VerticalDestinations(all, from))
	if !isKing {
		dest = dest.AndNot(board.KingOnlyMask)
	}
	for _, to := range dest.Squares() {
		if n >= len(out) {
			return n
		}
		out[n] = board.NewMove(from, to)
		n++
	}
	return n
}

// MakeMove applies m (an untagged (from,to) pair) to the position, pushing the prior
// state onto the snapshot stack.
func (s *State) MakeMove(m board.Move) {
	s.stack[s.sp] = s.core
	s.sp++
	s.applyMove(m)
}

// UnmakeMove reverts the most recent MakeMove by popping the snapshot stack; it never
// recomputes the position from scratch.
func (s *State) UnmakeMove() {
	s.sp--
	s.core = s.stack[s.sp]
}

// ClassifyMove runs the move on a scratch copy of the position -- never touching the
// snapshot stack -- and returns m tagged with its capture count and, for the
// king-mobility-affecting case applicable to the mover's color, the king-exit tags.
func (s *State) ClassifyMove(m board.Move) board.Move {
	save := s.core
	mover := s.turn
	beforeCorner := s.hasKingCornerPath()

	captured := s.applyMove(m)

	tag := m.Raw14().WithCaptureCount(captured)
	afterCorner := s.hasKingCornerPath()
	switch {
	case mover == board.Black && beforeCorner && !afterCorner:
		tag = tag.WithTag(board.TagBlocksKingExit)
	case mover == board.White && !beforeCorner && afterCorner:
		tag = tag.WithTag(board.TagKingSeesCorner)
	}

	s.core = save
	return tag
}

func (s *State) hasKingCornerPath() bool {
	if s.kingSquare == board.NotOnBoard {
		return false
	}
	all := s.allPieces()
	dest := board.HorizontalDestinations(all, s.kingSquare).Or(board.VerticalDestinations(all, s.kingSquare))
	return dest.And(board.CornersMask).PopCount() > 0
}

// applyMove mutates s.core in place: it moves the piece, resolves captures, updates the
// hash incrementally, advances the turn and checks for a decided result. It returns the
// number of opponent pieces captured.
func (s *State) applyMove(m board.Move) int {
	from, to := m.From(), m.To()
	mover := s.turn

	var moverKind board.Kind
	switch {
	case mover == board.White && from == s.kingSquare:
		moverKind = board.KingPiece
		s.kingSquare = to
	case mover == board.Black:
		moverKind = board.BlackSoldier
		s.black = s.black.Clear(from).Set(to)
	default:
		moverKind = board.WhiteSoldier
		s.white = s.white.Clear(from).Set(to)
	}

	s.hash ^= s.zt.TurnKey()
	s.hash ^= s.zt.PieceKey(moverKind, from)
	s.hash ^= s.zt.PieceKey(moverKind, to)

	captured := s.resolveCaptures(to, mover)

	switch {
	case mover == board.Black && s.kingSquare == board.NotOnBoard:
		s.result = board.BlackWins
	case mover == board.White && s.kingSquare != board.NotOnBoard && board.CornersMask.Get(s.kingSquare):
		s.result = board.WhiteWins
	}

	s.turnNumber++
	s.turn = mover.Opponent()
	s.lastMove = m.Raw14()

	if s.result == board.Undecided && s.turnNumber >= board.MaxMoves {
		s.result = board.Draw
	}

	s.rebuildPieceLists()
	return captured
}

// resolveCaptures implements the sandwich-capture rule at the square the mover just
// landed on: assisting pieces are the mover's own pieces (the king counts as white's)
// plus the corner/center anchors, which act as hostile anchors for either side;
// candidate captures are opponent pieces orthogonally adjacent to `to` that are also
// orthogonally adjacent to an assisting square.
func (s *State) resolveCaptures(to board.Square, mover board.Color) int {
	own := s.ownPieces(mover)
	opp := s.opponentPieces(mover)

	assisting := own.Or(board.KingOnlyMask).And(board.TwoCross[to])
	candidates := assisting.ToNeighbors().And(opp).And(board.OneCross[to])

	if mover == board.Black && s.kingSquare != board.NotOnBoard && candidates.Get(s.kingSquare) {
		n := bitboard.AndCount(board.OneCross[s.kingSquare], s.black)
		if board.OneCross[s.kingSquare].And(board.CenterMask).PopCount() > 0 {
			n++
		}
		if board.KingSurroundMask.Get(s.kingSquare) && n < 4 {
			candidates = candidates.Clear(s.kingSquare)
		}
	}

	count := 0
	for _, sq := range candidates.Squares() {
		switch {
		case sq == s.kingSquare:
			s.hash ^= s.zt.PieceKey(board.KingPiece, sq)
			s.kingSquare = board.NotOnBoard
		case mover == board.Black:
			s.white = s.white.Clear(sq)
			s.hash ^= s.zt.PieceKey(board.WhiteSoldier, sq)
		default:
			s.black = s.black.Clear(sq)
			s.hash ^= s.zt.PieceKey(board.BlackSoldier, sq)
		}
		count++
	}
	return count
}

func (s *State) ownPieces(c board.Color) bitboard.Bitboard {
	if c == board.Black {
		return s.black
	}
	return s.white.Or(s.kingBitboard())
}

func (s *State) opponentPieces(c board.Color) bitboard.Bitboard {
	if c == board.Black {
		return s.white.Or(s.kingBitboard())
	}
	return s.black
}

func (s *State) rebuildPieceLists() {
	s.blackCount = 0
	for _, sq := range s.black.Squares() {
		s.blackList[s.blackCount] = sq
		s.blackCount++
	}
	s.whiteCount = 0
	for _, sq := range s.white.Squares() {
		s.whiteList[s.whiteCount] = sq
		s.whiteCount++
	}
}

// Evaluate returns the static score for the side to move, clamped to
// [-WinValue-MaxMoves, +WinValue+MaxMoves]. Terminal positions score
// +/-(WinValue + remaining moves) so a faster win outranks a slower one; draws score 0.
func (s *State) Evaluate() board.Score {
	if s.result != board.Undecided {
		if winner, ok := s.result.Winner(); ok {
			sign := board.Score(1)
			if winner != s.turn {
				sign = -1
			}
			return sign * (board.WinValue + board.Score(s.RemainingMoves()))
		}
		return 0
	}

	raw := eval.Evaluate(s, s.weights)
	return board.Clamp(raw * int32(board.Unit(s.turn)))
}
