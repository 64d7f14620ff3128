// Package searchctl holds the turn-budget policy the engine applies around each call
// into pkg/search: how much wall-clock time a move gets, and the transposition table
// size it searches with.
package searchctl

import "time"

// Budget holds the per-turn time allowance in nanoseconds, matching the host
// configuration surface (Section 6): the first turn gets more time to amortize the
// one-time cost of warming the transposition table and JIT-ing hot paths.
type Budget struct {
	StartTurnNS int64
	TurnNS      int64
}

// DefaultBudget returns the reference configuration: ~9.95s for the first move, ~1.95s
// for every move after that.
func DefaultBudget() Budget {
	return Budget{
		StartTurnNS: 9_950_000_000,
		TurnNS:      1_950_000_000,
	}
}

// ForTurn returns the duration budgeted for the given turn number (1-indexed).
func (b Budget) ForTurn(turnNumber int) time.Duration {
	if turnNumber <= 1 {
		return time.Duration(b.StartTurnNS)
	}
	return time.Duration(b.TurnNS)
}

// DefaultTableSizeMB is the reference transposition table size (Section 6, TT_SIZE_MB).
const DefaultTableSizeMB = 340
