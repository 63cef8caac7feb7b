package cells

import (
	"errors"
	"fmt"
	"slices"
)

// ChannelID is a module-local channel coordinate.
type ChannelID = int64

// ErrNotSorted is returned when a cell sequence is not in column-major order.
var ErrNotSorted = errors.New("cells not sorted in column-major order")

// Cell is one recorded sensor activation.
type Cell struct {
	Channel0   ChannelID `json:"channel0"`
	Channel1   ChannelID `json:"channel1"`
	Activation float64   `json:"activation"` // e.g. deposited charge
	Time       float64   `json:"time"`
}

// Less reports whether a sorts before b in the total cell order:
// Channel0, then Channel1, then Activation. Time does not participate.
func Less(a, b Cell) bool {
	if a.Channel0 != b.Channel0 {
		return a.Channel0 < b.Channel0
	}
	if a.Channel1 != b.Channel1 {
		return a.Channel1 < b.Channel1
	}
	return a.Activation < b.Activation
}

// Equal reports whether all four fields of a and b match.
func Equal(a, b Cell) bool {
	return a.Channel0 == b.Channel0 &&
		a.Channel1 == b.Channel1 &&
		a.Activation == b.Activation &&
		a.Time == b.Time
}

// ColumnMajorLess orders by Channel1, then Channel0.
func ColumnMajorLess(a, b Cell) bool {
	if a.Channel1 != b.Channel1 {
		return a.Channel1 < b.Channel1
	}
	return a.Channel0 < b.Channel0
}

func compareColumnMajor(a, b Cell) int {
	switch {
	case ColumnMajorLess(a, b):
		return -1
	case ColumnMajorLess(b, a):
		return 1
	}
	return 0
}

// SortColumnMajor sorts cells in place into column-major order.
// The sort is stable so cells sharing a position keep their input order.
func SortColumnMajor(cs []Cell) {
	slices.SortStableFunc(cs, compareColumnMajor)
}

// IsColumnMajorSorted reports whether cs is in column-major order.
func IsColumnMajorSorted(cs []Cell) bool {
	return CheckColumnMajor(cs) == nil
}

// CheckColumnMajor returns an error wrapping ErrNotSorted that names the
// first cell found out of order, or nil.
func CheckColumnMajor(cs []Cell) error {
	for i := 1; i < len(cs); i++ {
		if ColumnMajorLess(cs[i], cs[i-1]) {
			return fmt.Errorf("%w: cell %d (%d,%d) precedes cell %d (%d,%d)",
				ErrNotSorted, i, cs[i].Channel0, cs[i].Channel1,
				i-1, cs[i-1].Channel0, cs[i-1].Channel1)
		}
	}
	return nil
}
