// Package identity allocates durable patient numbers. The allocator is
// an explicit object so identity generation stays deterministic and
// testable in isolation.
package identity

import "strconv"

// Baseline is the first patient number handed out by an empty system.
const Baseline = 1001

type Allocator struct {
	baseline int
}

func NewAllocator() *Allocator {
	return &Allocator{baseline: Baseline}
}

// NextPatientNumber returns the next unique patient number given the
// numbers currently in memory and the ones in the persisted document.
// Both sources are scanned because either can be ahead of the other
// after a failed save. Non-numeric values are ignored, not errors.
func (a *Allocator) NextPatientNumber(inMemory, persisted []string) string {
	highest := 0
	seen := false
	for _, src := range [][]string{inMemory, persisted} {
		for _, raw := range src {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				continue
			}
			if !seen || n > highest {
				highest = n
				seen = true
			}
		}
	}
	if !seen {
		return strconv.Itoa(a.baseline)
	}
	return strconv.Itoa(highest + 1)
}
