package ccl

import (
	"github.com/banshee-data/sparseccl/internal/cells"
	"github.com/banshee-data/sparseccl/internal/container"
)

// ClusterID makes a cluster self-describing: it carries a copy of the
// module context plus the threshold of the run that produced it.
type ClusterID struct {
	Event       cells.EventID    `json:"event"`
	ModuleIndex int              `json:"module_idx"`
	Geometry    cells.GeometryID `json:"module"`
	Threshold   float64          `json:"threshold"`
	Placement   cells.Transform  `json:"placement"`
	Pixel       cells.PixelData  `json:"pixel"`
}

// NewClusterID copies the module context for the module at index.
func NewClusterID(m cells.Module, index int, threshold float64) ClusterID {
	return ClusterID{
		Event:       m.Event,
		ModuleIndex: index,
		Geometry:    m.Geometry,
		Threshold:   threshold,
		Placement:   m.Placement,
		Pixel:       m.Pixel,
	}
}

// Cluster is one connected group of cells.
type Cluster struct {
	ID    ClusterID    `json:"id"`
	Cells []cells.Cell `json:"cells"`
}

// Container holds one module's clusters, index-aligned with label numbers.
type Container = container.Paired[ClusterID, []cells.Cell]

// NewContainerFor returns an empty cluster container sized for n clusters.
func NewContainerFor(n int) *Container {
	return container.New[ClusterID, []cells.Cell](n)
}

// Clusters flattens c into Cluster records in label order.
func Clusters(c *Container) []Cluster {
	if c == nil {
		return nil
	}
	out := make([]Cluster, 0, c.Len())
	for _, e := range c.All() {
		out = append(out, Cluster{ID: e.Header, Cells: e.Items})
	}
	return out
}

// Sizes returns the cell count of every cluster in c.
func Sizes(c *Container) []int {
	if c == nil {
		return nil
	}
	out := make([]int, 0, c.Len())
	for _, e := range c.All() {
		out = append(out, len(e.Items))
	}
	return out
}
