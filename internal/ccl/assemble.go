package ccl

import (
	"errors"
	"fmt"

	"github.com/banshee-data/sparseccl/internal/cells"
)

// ErrInvalidLabeling is returned by Assemble when a Labeling does not
// describe cs.
var ErrInvalidLabeling = errors.New("invalid labeling")

// Assemble groups cs into one cluster per label. Each cluster owns its cells
// in their original order, and clusters follow label order.
//
// All cluster cell lists share one backing array sized len(cs); each list is
// capped to its own segment so appending to one never overwrites another.
func Assemble(cs []cells.Cell, lab Labeling, id ClusterID) (*Container, error) {
	if err := validate(cs, lab); err != nil {
		return nil, err
	}

	// Offsets from sizes, then fill with per-label cursors.
	offsets := make([]int, lab.Count+1)
	for l, size := range lab.Sizes {
		offsets[l+1] = offsets[l] + size
	}
	cursor := make([]int, lab.Count)
	copy(cursor, offsets[:lab.Count])

	backing := make([]cells.Cell, len(cs))
	for i, c := range cs {
		l := lab.Labels[i]
		backing[cursor[l]] = c
		cursor[l]++
	}

	out := NewContainerFor(lab.Count)
	for l := range lab.Count {
		lo, hi := offsets[l], offsets[l+1]
		out.Push(id, backing[lo:hi:hi])
	}
	return out, nil
}

func validate(cs []cells.Cell, lab Labeling) error {
	if len(lab.Labels) != len(cs) {
		return fmt.Errorf("%w: %d labels for %d cells", ErrInvalidLabeling, len(lab.Labels), len(cs))
	}
	if len(lab.Sizes) != lab.Count {
		return fmt.Errorf("%w: %d sizes for %d labels", ErrInvalidLabeling, len(lab.Sizes), lab.Count)
	}
	total := 0
	for l, size := range lab.Sizes {
		if size <= 0 {
			return fmt.Errorf("%w: label %d is empty", ErrInvalidLabeling, l)
		}
		total += size
	}
	if total != len(cs) {
		return fmt.Errorf("%w: sizes sum to %d, want %d", ErrInvalidLabeling, total, len(cs))
	}
	seen := make([]int, lab.Count)
	for i, l := range lab.Labels {
		if l < 0 || l >= lab.Count {
			return fmt.Errorf("%w: cell %d has label %d outside [0, %d)", ErrInvalidLabeling, i, l, lab.Count)
		}
		seen[l]++
	}
	for l := range seen {
		if seen[l] != lab.Sizes[l] {
			return fmt.Errorf("%w: label %d has %d cells, size says %d", ErrInvalidLabeling, l, seen[l], lab.Sizes[l])
		}
	}
	return nil
}
