package engine

import (
	"unsafe"

	"github.com/rs/zerolog/log"
)

// TTFlag says how a stored score bounds the true value.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // score is the value
	TTLowerBound               // failed high: value >= score
	TTUpperBound               // failed low: value <= score
)

func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "exact"
	case TTLowerBound:
		return "lower"
	case TTUpperBound:
		return "upper"
	}
	return "?"
}

// TTEntry is one slot. Key holds the full position hash.
type TTEntry struct {
	Key   uint64
	Score int16
	Depth int8
	Flag  TTFlag
}

// TranspositionTable is a direct-mapped cache from position hash to a prior
// search result. It is not safe for concurrent use.
//
// Store always overwrites its slot, whatever the depth of the entry already
// there.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64

	hits   uint64
	probes uint64
}

// NewTranspositionTable allocates the largest power-of-two number of entries
// that fits in budget bytes (at least one).
func NewTranspositionTable(budget int) *TranspositionTable {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	n := uint64(1)
	if budget > 0 {
		n = roundDownToPowerOf2(uint64(budget) / entrySize)
	}
	if n == 0 {
		n = 1
	}

	log.Debug().
		Uint64("entries", n).
		Uint64("bytes", n*entrySize).
		Msg("transposition table allocated")

	return &TranspositionTable{
		entries: make([]TTEntry, n),
		mask:    n - 1,
	}
}

// NewTranspositionTableMB sizes the table from a budget in megabytes.
func NewTranspositionTableMB(mb int) *TranspositionTable {
	return NewTranspositionTable(mb << 20)
}

func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe returns the entry for hash if the slot holds that exact position.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++
	e := tt.entries[hash&tt.mask]
	if e.Key != hash || e.Depth <= 0 {
		return TTEntry{}, false
	}
	tt.hits++
	return e, true
}

// Store writes an entry into hash's slot, replacing whatever was there.
func (tt *TranspositionTable) Store(hash uint64, depth, score int, flag TTFlag) {
	tt.entries[hash&tt.mask] = TTEntry{
		Key:   hash,
		Score: int16(score),
		Depth: int8(depth),
		Flag:  flag,
	}
}

func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
	tt.hits, tt.probes = 0, 0
}

// Len is the number of slots.
func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

// HashFull samples the first thousand slots and returns the used permille.
func (tt *TranspositionTable) HashFull() int {
	sample := min(1000, len(tt.entries))
	used := 0
	for _, e := range tt.entries[:sample] {
		if e.Depth > 0 {
			used++
		}
	}
	return used * 1000 / sample
}

// Stats returns probe and hit counts since the last Clear.
func (tt *TranspositionTable) Stats() (probes, hits uint64) {
	return tt.probes, tt.hits
}

// Mate scores are stored relative to the node, not the root, so a mate
// found through a transposition keeps the right distance.

func AdjustScoreToTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}

func AdjustScoreFromTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}
