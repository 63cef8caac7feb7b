package ccl

import (
	"fmt"
	"slices"

	"github.com/banshee-data/sparseccl/internal/cells"
)

// SortPolicy decides what LabelChecked does about the column-major
// precondition.
type SortPolicy int

const (
	// PolicyCheck rejects unsorted input with cells.ErrNotSorted.
	PolicyCheck SortPolicy = iota
	// PolicyTrust labels the input as given. Unsorted input silently
	// produces wrong clusters.
	PolicyTrust
	// PolicySort labels a column-major sorted copy of the input.
	PolicySort
)

// DefaultSortPolicy is used when no policy is configured.
const DefaultSortPolicy = PolicyCheck

func (p SortPolicy) String() string {
	switch p {
	case PolicyCheck:
		return "check"
	case PolicyTrust:
		return "trust"
	case PolicySort:
		return "sort"
	default:
		return fmt.Sprintf("SortPolicy(%d)", int(p))
	}
}

// ParseSortPolicy maps "check", "trust" or "sort" to a SortPolicy.
// The empty string selects DefaultSortPolicy.
func ParseSortPolicy(s string) (SortPolicy, error) {
	switch s {
	case "":
		return DefaultSortPolicy, nil
	case "check":
		return PolicyCheck, nil
	case "trust":
		return PolicyTrust, nil
	case "sort":
		return PolicySort, nil
	}
	return 0, fmt.Errorf("unknown sort policy %q (want check, trust or sort)", s)
}

// LabelChecked applies policy to cs and then runs Label. It returns the cell
// sequence that was actually labelled, which is a sorted copy under
// PolicySort and cs itself otherwise.
func LabelChecked(cs []cells.Cell, policy SortPolicy) ([]cells.Cell, Labeling, error) {
	switch policy {
	case PolicyTrust:
	case PolicyCheck:
		if err := cells.CheckColumnMajor(cs); err != nil {
			return nil, Labeling{}, err
		}
	case PolicySort:
		if !cells.IsColumnMajorSorted(cs) {
			cs = slices.Clone(cs)
			cells.SortColumnMajor(cs)
		}
	default:
		return nil, Labeling{}, fmt.Errorf("unknown sort policy %d", int(policy))
	}
	return cs, Label(cs), nil
}
