package ccl

import (
	"fmt"

	"github.com/banshee-data/sparseccl/internal/cells"
)

// ClusterModule labels one module's cells under policy and assembles the
// result. Every cluster carries an identity built from m, index and
// threshold.
func ClusterModule(index int, m cells.Module, cs []cells.Cell, threshold float64, policy SortPolicy) (*Container, error) {
	labelled, lab, err := LabelChecked(cs, policy)
	if err != nil {
		return nil, fmt.Errorf("module %d (geometry %d): %w", index, m.Geometry, err)
	}
	out, err := Assemble(labelled, lab, NewClusterID(m, index, threshold))
	if err != nil {
		return nil, fmt.Errorf("module %d (geometry %d): %w", index, m.Geometry, err)
	}
	return out, nil
}
