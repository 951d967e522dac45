package board

import (
	"fmt"
	"math/bits"
)

// FindMagic searches for a multiplier that perfectly hashes every occupancy
// subset of sq's mask into a table of 1<<popcount(mask) slots. Collisions
// are tolerated only between subsets with identical attack sets.
//
// Candidates are sparse (three random words ANDed together). rand must be
// safe to call from the calling goroutine only.
func FindMagic(s Slider, sq Square, rand func() uint64, maxTries int) (uint64, error) {
	mask := OccupancyMask(s, sq)
	n := mask.PopCount()
	shift := uint(64 - n)

	occupancies := make([]Bitboard, 0, 1<<n)
	reference := make([]Bitboard, 0, 1<<n)
	sub := Empty
	for {
		occupancies = append(occupancies, sub)
		reference = append(reference, SlidingAttacks(s, sq, sub))
		sub = (sub - mask) & mask
		if sub == Empty {
			break
		}
	}

	table := make([]Bitboard, 1<<n)
	epoch := make([]int, 1<<n)

	for try := 1; try <= maxTries; try++ {
		magic := rand() & rand() & rand()
		// Multipliers that spread too few mask bits into the top byte almost
		// never work.
		if bits.OnesCount64((uint64(mask)*magic)&0xFF00000000000000) < 6 {
			continue
		}

		ok := true
		for i, occ := range occupancies {
			idx := (uint64(occ) * magic) >> shift
			if epoch[idx] != try {
				epoch[idx] = try
				table[idx] = reference[i]
			} else if table[idx] != reference[i] {
				ok = false
				break
			}
		}
		if ok {
			return magic, nil
		}
	}
	return 0, fmt.Errorf("no %s magic for %s in %d tries", s, sq, maxTries)
}

// VerifyMagic reports whether magic hashes sq's subsets without a
// destructive collision.
func VerifyMagic(s Slider, sq Square, magic uint64) bool {
	mask := OccupancyMask(s, sq)
	shift := uint(64 - mask.PopCount())
	seen := make(map[uint64]Bitboard, 1<<mask.PopCount())

	sub := Empty
	for {
		idx := (uint64(sub) * magic) >> shift
		want := SlidingAttacks(s, sq, sub)
		if got, ok := seen[idx]; ok && got != want {
			return false
		}
		seen[idx] = want
		sub = (sub - mask) & mask
		if sub == Empty {
			return true
		}
	}
}
