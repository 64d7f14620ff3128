package board

import "fmt"

// Move packs a (from, to) pair plus classification tags used for move ordering.
//
//	bits 0-6:   from square (0..80)
//	bits 7-13:  to square (0..80)
//	bits 14-31: classification tags, set by State.ClassifyMove and the search
//
// The low 14 bits alone ("Raw14") are what the transposition table and killer table
// store and compare; the full tagged value is what move ordering sorts on.
type Move uint32

const (
	fromShift = 0
	toShift   = 7
	squareBits Move = 0x7F

	// Raw14Mask isolates the untagged (from,to) move used by the TT and killer table.
	Raw14Mask Move = 1<<14 - 1

	// CaptureShift/CaptureMask hold the number of pieces this move captures (0..3).
	CaptureShift = 25
	CaptureMask  Move = 0x3 << CaptureShift

	// TagBlocksKingExit marks a black move that removes the king's last legal path
	// to a corner.
	TagBlocksKingExit Move = 1 << 23
	// TagKingSeesCorner marks a white move that gives the king a legal path to a
	// corner it did not have before.
	TagKingSeesCorner Move = 1 << 24
	// TagKiller marks a move that is a recorded killer at the ply being searched.
	TagKiller Move = 1 << 22
	// TagIID marks the move selected by the internal-iterative-deepening probe.
	TagIID Move = 1 << 28
	// TagPV marks the move carried over from the transposition table / prior PV.
	TagPV Move = 1 << 29
)

// NewMove builds an untagged move from its endpoints.
func NewMove(from, to Square) Move {
	return Move(from)<<fromShift | Move(to)<<toShift
}

func (m Move) From() Square { return Square((m >> fromShift) & squareBits) }
func (m Move) To() Square   { return Square((m >> toShift) & squareBits) }

// Raw14 returns the untagged (from,to) pair as used by the TT and killer table.
func (m Move) Raw14() Move { return m & Raw14Mask }

// WithTag returns the move with the given tag bit(s) set.
func (m Move) WithTag(tag Move) Move { return m | tag }

// CaptureCount returns the number of pieces this move's classification says it
// captures (0..3).
func (m Move) CaptureCount() int { return int((m & CaptureMask) >> CaptureShift) }

// WithCaptureCount returns the move with its capture-count field set.
func (m Move) WithCaptureCount(n int) Move {
	return (m &^ CaptureMask) | (Move(n)<<CaptureShift)&CaptureMask
}

// IsQuiet reports whether the move captures nothing.
func (m Move) IsQuiet() bool { return m.CaptureCount() == 0 }

// IsCritical reports whether any classification bit (capture, king-mobility change)
// is set, i.e. the move belongs in the "critical" ordering bucket.
func (m Move) IsCritical() bool {
	return m&(CaptureMask|TagBlocksKingExit|TagKingSeesCorner) != 0
}

// IsLoud reports whether the move is "loud" for quiescence purposes: it captures or
// changes the king's mobility to/from a corner.
func (m Move) IsLoud() bool {
	return m&(CaptureMask|TagBlocksKingExit|TagKingSeesCorner) != 0
}

func (m Move) String() string {
	return fmt.Sprintf("%v%v", FormatSquare(m.From()), FormatSquare(m.To()))
}
