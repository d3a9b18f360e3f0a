package pose

import (
	"errors"
	"fmt"

	"pose-warp/internal/geom"
)

// ErrCardinalityMismatch reports a target handle set whose length does
// not match the reference it must correspond to position-by-position.
var ErrCardinalityMismatch = errors.New("handle cardinality mismatch")

// HandleSet is an ordered, fixed-cardinality list of handle points.
// A reference set and every per-frame target set must have identical
// length and positional correspondence.
type HandleSet []geom.Point

// Correspond verifies the target set pairs off one-to-one with h.
func (h HandleSet) Correspond(target HandleSet) error {
	if len(h) != len(target) {
		return fmt.Errorf("pose: reference has %d handles, target has %d: %w",
			len(h), len(target), ErrCardinalityMismatch)
	}
	return nil
}

// Clone returns an independent copy.
func (h HandleSet) Clone() HandleSet {
	out := make(HandleSet, len(h))
	copy(out, h)
	return out
}
