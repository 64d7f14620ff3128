// Package eval implements the static positional evaluator: precomputed per-square
// region tables and the weighted terms (material, mobility, king distance, corner
// path, threats) that combine into a single black-perspective score.
package eval

import (
	"github.com/tablutai/tablut/pkg/bitboard"
	"github.com/tablutai/tablut/pkg/board"
)

// Reader is the minimal position view the evaluator needs. *state.State satisfies it.
type Reader interface {
	Black() bitboard.Bitboard
	White() bitboard.Bitboard
	KingSquare() board.Square
}

// Weights parameterizes the evaluator's term balance. The zero value is not usable;
// use DefaultWeights.
type Weights struct {
	BlackPieceValue    int32
	WhitePieceValue    int32
	MobilityWeight     int32
	KingDistanceWeight int32
	CornerPathWeight   int32
	ThreatWeight       int32
	RegionWeight       int32
}

// DefaultWeights returns the hand-tuned weights used by the reference evaluator.
func DefaultWeights() Weights {
	return Weights{
		BlackPieceValue:    10,
		WhitePieceValue:    18,
		MobilityWeight:     1,
		KingDistanceWeight: 2,
		CornerPathWeight:   6,
		ThreatWeight:       40,
		RegionWeight:       1,
	}
}

// RegionTable holds the precomputed positional bonus, per (kind, square). Built once
// in init() from each piece kind's geometric incentive: black wants to close in on the
// center, white wants to spread toward the rim, the king wants to shorten its path to
// a corner.
var RegionTable [board.NumKinds][board.NumSquares]int16

func init() {
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		centerDist := manhattan(sq, board.Center)
		cornerDist := distanceToNearestCorner(sq)

		RegionTable[board.BlackSoldier][sq] = int16(8 - centerDist)
		RegionTable[board.WhiteSoldier][sq] = int16(centerDist)
		RegionTable[board.KingPiece][sq] = int16(16 - 2*cornerDist)
	}
}

func manhattan(a, b board.Square) int {
	dr := a.Row() - b.Row()
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col() - b.Col()
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

func distanceToNearestCorner(sq board.Square) int {
	best := 1 << 30
	for _, c := range board.Corners {
		if d := manhattan(sq, c); d < best {
			best = d
		}
	}
	return best
}

// Evaluate returns the black-perspective static score of the position described by r:
// positive favors black. The caller (State.Evaluate) flips the sign to the side to
// move's perspective and clamps/handles terminal positions.
func Evaluate(r Reader, w Weights) int32 {
	black := r.Black()
	white := r.White()
	king := r.KingSquare()

	hasKing := king != board.NotOnBoard
	var kingBB bitboard.Bitboard
	if hasKing {
		kingBB = kingBB.Set(king)
	}
	all := black.Or(white).Or(kingBB)

	var score int32

	score += int32(black.PopCount())*w.BlackPieceValue - int32(white.PopCount())*w.WhitePieceValue

	for _, sq := range black.Squares() {
		score += int32(RegionTable[board.BlackSoldier][sq]) * w.RegionWeight
	}
	for _, sq := range white.Squares() {
		score -= int32(RegionTable[board.WhiteSoldier][sq]) * w.RegionWeight
	}
	if hasKing {
		score -= int32(RegionTable[board.KingPiece][king]) * w.RegionWeight
	}

	blackMobility := 0
	for _, sq := range black.Squares() {
		blackMobility += mobilityCount(all, sq, false)
	}
	whiteMobility := 0
	for _, sq := range white.Squares() {
		whiteMobility += mobilityCount(all, sq, false)
	}
	if hasKing {
		whiteMobility += mobilityCount(all, king, true)
	}
	score += int32(blackMobility-whiteMobility) * w.MobilityWeight

	if hasKing {
		totalDist := 0
		for _, sq := range black.Squares() {
			totalDist += manhattan(sq, king)
		}
		score -= int32(totalDist) * w.KingDistanceWeight

		dest := board.HorizontalDestinations(all, king).Or(board.VerticalDestinations(all, king))
		score -= int32(dest.And(board.CornersMask).PopCount()) * w.CornerPathWeight
	}

	whiteTargets := white
	if hasKing {
		whiteTargets = whiteTargets.Set(king)
	}
	blackAnchor := black.Or(board.KingOnlyMask)
	whiteAnchor := white.Or(kingBB).Or(board.KingOnlyMask)

	// A threat only counts when some attacker can slide onto its anchor square.
	var blackReach, whiteReach bitboard.Bitboard
	for _, sq := range black.Squares() {
		blackReach = blackReach.Or(board.HorizontalDestinations(all, sq)).Or(board.VerticalDestinations(all, sq))
	}
	for _, sq := range white.Squares() {
		whiteReach = whiteReach.Or(board.HorizontalDestinations(all, sq)).Or(board.VerticalDestinations(all, sq))
	}
	blackReach, whiteReach = blackReach.AndNot(board.KingOnlyMask), whiteReach.AndNot(board.KingOnlyMask)
	if hasKing {
		whiteReach = whiteReach.Or(board.HorizontalDestinations(all, king)).Or(board.VerticalDestinations(all, king))
	}

	threatsOnWhite := countThreatenedPieces(all, blackAnchor, whiteTargets, blackReach)
	threatsOnBlack := countThreatenedPieces(all, whiteAnchor, black, whiteReach)
	score += int32(threatsOnWhite-threatsOnBlack) * w.ThreatWeight

	return score
}

func mobilityCount(all bitboard.Bitboard, sq board.Square, isKing bool) int {
	dest := board.HorizontalDestinations(all, sq).Or(board.VerticalDestinations(all, sq))
	if !isKing {
		dest = dest.AndNot(board.KingOnlyMask)
	}
	return dest.PopCount()
}

func inBounds(row, col int) bool {
	return row >= 0 && row < board.BoardSize && col >= 0 && col < board.BoardSize
}

// countThreatenedPieces counts distinct target squares with at least one threat whose
// anchor square is in reach, rather than one per exposed side.
func countThreatenedPieces(all, attackerAnchor, targets, reach bitboard.Bitboard) int {
	seen := make(map[board.Square]bool)
	for _, t := range FindThreats(all, attackerAnchor, targets) {
		if reach.Get(t.Anchor) {
			seen[t.Target] = true
		}
	}
	return len(seen)
}
