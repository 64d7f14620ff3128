// Package search implements the PVS search core: a chunked transposition table, a
// per-ply killer table, iterative-deepening principal variation search with
// alpha-beta pruning, and a capture/mobility-limited quiescence extension.
package search

import (
	"context"
	"fmt"

	"github.com/seekerror/logw"
	"github.com/tablutai/tablut/pkg/board"
)

// NodeType records how a stored score bounds the true value of a position.
type NodeType uint8

const (
	// PVNode holds an exact score.
	PVNode NodeType = iota
	// CutNode holds a lower bound (a beta cutoff occurred; the true score is at least this).
	CutNode
	// AllNode holds an upper bound (no move improved alpha; the true score is at most this).
	AllNode
)

func (t NodeType) String() string {
	switch t {
	case PVNode:
		return "PV"
	case CutNode:
		return "CUT"
	case AllNode:
		return "ALL"
	default:
		return "?"
	}
}

// numChunks splits the table's backing storage into independently allocated chunks so
// no single allocation is asked to hold the whole table at once.
const numChunks = 64

// ReplacementAge is how many turns older an incumbent entry must be before it is
// evicted regardless of depth.
const ReplacementAge = 12

const (
	metaTypeShift  = 14
	metaDepthShift = 7
	metaDepthMask  = 0x7F
	metaAgeMask    = 0x7F
)

func packMeta(nt NodeType, depth, age int) uint16 {
	return uint16(nt)<<metaTypeShift | uint16(depth&metaDepthMask)<<metaDepthShift | uint16(age&metaAgeMask)
}

func unpackMeta(m uint16) (NodeType, int, int) {
	nt := NodeType(m >> metaTypeShift)
	depth := int(m>>metaDepthShift) & metaDepthMask
	age := int(m) & metaAgeMask
	return nt, depth, age
}

// entry is a single transposition table slot. Go rounds its size up to 16 bytes (the
// 8-byte hash forces 8-byte struct alignment): hash(8) + move(2) + score(2) + meta(2).
type entry struct {
	hash  board.ZobristHash
	move  uint16
	score board.Score
	meta  uint16
}

// Table is a direct-mapped transposition table, chunked into numChunks separately
// allocated slices so its ~340MB default footprint never requires one contiguous
// allocation. Not safe for concurrent use -- the search is single-threaded.
type Table struct {
	chunks    [numChunks][]entry
	capacity  uint64
	chunkSize uint64
}

// NewTable allocates a table sized to hold roughly sizeMB megabytes of 16-byte entries.
func NewTable(ctx context.Context, sizeMB int) *Table {
	if sizeMB < 1 {
		sizeMB = 1
	}
	capacity := uint64(sizeMB) * (1 << 20) / 16
	chunkSize := capacity / numChunks
	if chunkSize == 0 {
		chunkSize = 1
	}

	t := &Table{chunkSize: chunkSize, capacity: chunkSize * numChunks}
	logw.Infof(ctx, "Allocating %vMB TT with %v entries", t.Size()>>20, t.capacity)
	for i := range t.chunks {
		t.chunks[i] = make([]entry, chunkSize)
	}
	return t
}

func (t *Table) locate(hash board.ZobristHash) (chunk, slot uint64) {
	index := uint64(hash) % t.capacity
	return index % numChunks, index % t.chunkSize
}

// Get returns the stored node for hash, if the slot's stored hash matches exactly.
func (t *Table) Get(hash board.ZobristHash) (nt NodeType, depth int, score board.Score, move board.Move, ok bool) {
	if hash == 0 {
		return 0, 0, 0, 0, false
	}
	chunk, slot := t.locate(hash)
	e := &t.chunks[chunk][slot]
	if e.hash != hash {
		return 0, 0, 0, 0, false
	}
	nt, depth, _ = unpackMeta(e.meta)
	return nt, depth, e.score, board.Move(e.move), true
}

// Put stores an entry, applying the depth/age replacement policy: a write succeeds
// when the slot is empty, the new depth exceeds the incumbent's, or the incumbent is
// at least ReplacementAge turns stale relative to age.
func (t *Table) Put(hash board.ZobristHash, nt NodeType, depth int, score board.Score, move board.Move, age int) bool {
	if hash == 0 {
		return false
	}
	chunk, slot := t.locate(hash)
	e := &t.chunks[chunk][slot]

	if e.hash != 0 {
		_, curDepth, curAge := unpackMeta(e.meta)
		if depth <= curDepth && age-curAge < ReplacementAge {
			return false
		}
	}

	e.hash = hash
	e.move = uint16(move.Raw14())
	e.score = score
	e.meta = packMeta(nt, depth, age)
	return true
}

// Size returns the table's total allocated size in bytes.
func (t *Table) Size() uint64 {
	return t.capacity * 16
}

// Used returns the fraction of slots currently occupied, by a single-pass scan.
func (t *Table) Used() float64 {
	var occupied uint64
	for _, c := range t.chunks {
		for i := range c {
			if c[i].hash != 0 {
				occupied++
			}
		}
	}
	return float64(occupied) / float64(t.capacity)
}

func (t *Table) String() string {
	return fmt.Sprintf("TT[%vMB, %v chunks]", t.Size()>>20, numChunks)
}
